package loudness

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// Load decodes a .wav or .mp3 file into interleaved integer PCM
func Load(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	}
	return nil, fmt.Errorf("loudness: unsupported file type %q", filepath.Ext(path))
}

func decodeWAV(r io.ReadSeeker) (*audio.IntBuffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return buf, nil
}

// decodeMP3 reads the whole stream; go-mp3 always yields 16-bit little endian stereo
func decodeMP3(r io.Reader) (*audio.IntBuffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	data := make([]int, len(raw)/2)
	for i := range data {
		data[i] = int(int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8))
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: dec.SampleRate()},
		Data:           data,
		SourceBitDepth: 16,
	}, nil
}

// WriteWAV encodes buf as PCM at its source bit depth (16 when unset)
func WriteWAV(path string, buf *audio.IntBuffer) (rerr error) {
	if buf == nil || buf.Format == nil {
		return fmt.Errorf("loudness: buffer has no format")
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	// audio format 1 is integer PCM
	enc := wav.NewEncoder(f, buf.Format.SampleRate, depth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return enc.Close()
}
