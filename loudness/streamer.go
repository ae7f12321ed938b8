package loudness

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/AnnTaiwan/computer-arch/fixed"
)

// Streamer normalises a beep stream block by block.
// Each Stream call measures the block RMS and applies the gain for target.
type Streamer struct {
	src    beep.Streamer
	target uint32
	gain   uint32 // last applied, Q16.16
}

// NewStreamer wraps src; target is the RMS level as a fraction of full scale
func NewStreamer(src beep.Streamer, target float64) *Streamer {
	return &Streamer{
		src:    src,
		target: uint32(math.Max(0, math.Min(1, target)) * FullScale),
		gain:   fixed.Scale,
	}
}

func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.src.Stream(samples)
	if n == 0 {
		return n, ok
	}

	var sum uint64
	for _, frame := range samples[:n] {
		for _, v := range frame {
			q := int64(v * FullScale)
			sum += uint64(q * q)
		}
	}
	if ms := sum / uint64(2*n); ms > 0 {
		s.gain = gainFor(ms, s.target)
	}

	g := fixed.ToFloat(s.gain)
	for i := range samples[:n] {
		for c := range samples[i] {
			samples[i][c] = math.Max(-1, math.Min(1, samples[i][c]*g))
		}
	}
	return n, ok
}

func (s *Streamer) Err() error {
	return s.src.Err()
}

// Gain returns the Q16.16 gain applied to the most recent block
func (s *Streamer) Gain() uint32 {
	return s.gain
}
