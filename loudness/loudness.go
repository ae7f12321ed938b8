// Package loudness normalises PCM audio to a target RMS level with a gain
// computed entirely in Q16.16 from fixed.Rsqrt.
package loudness

import (
	"github.com/go-audio/audio"

	"github.com/AnnTaiwan/computer-arch/fixed"
)

const (
	// FullScale is the largest 16-bit sample magnitude
	FullScale = 1<<15 - 1

	// DefaultTarget is -20 dBFS RMS in the 16-bit domain
	DefaultTarget = 3277

	// rsqrtWindow keeps the mean square inside the range where Rsqrt keeps ~0.1% accuracy
	rsqrtWindow = 1 << 12
)

// Gain returns the Q16.16 gain that moves the RMS of samples to target.
// Samples are measured in the 16-bit domain whatever their bit depth; target is a
// 16-bit RMS level. Silence returns unity gain.
func Gain(samples []int, bitDepth int, target uint32) uint32 {
	ms := meanSquare(samples, bitDepth)
	if ms == 0 {
		return fixed.Scale
	}
	return gainFor(ms, target)
}

// gainFor computes target/sqrt(ms) in Q16.16.
// ms is reduced by 4^k into the accurate window of Rsqrt and the result shifted back by k.
func gainFor(ms uint64, target uint32) uint32 {
	k := uint(0)
	for ms >= rsqrtWindow {
		ms >>= 2
		k++
	}
	g := uint64(target) * uint64(fixed.Rsqrt(uint32(ms)))
	g >>= k
	if g > fixed.Inf {
		return fixed.Inf
	}
	return uint32(g)
}

// unsignedOffset is the midpoint of 8-bit PCM, which WAV stores unsigned
const unsignedOffset = 128

// bias returns the value added to signed samples when storing them at bitDepth
func bias(bitDepth int) int64 {
	if bitDepth == 8 {
		return unsignedOffset
	}
	return 0
}

// meanSquare measures samples in the signed 16-bit domain
func meanSquare(samples []int, bitDepth int) uint64 {
	if len(samples) == 0 {
		return 0
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}
	off := bias(bitDepth)
	var sum uint64
	for _, s := range samples {
		v := int64(s) - off
		if bitDepth > 16 {
			v >>= bitDepth - 16
		} else {
			v <<= 16 - bitDepth
		}
		sum += uint64(v * v)
	}
	return sum / uint64(len(samples))
}

// Apply scales samples in place by a Q16.16 gain, clipping to the range of bitDepth.
// 8-bit samples are unsigned around 128 and stay that way.
func Apply(samples []int, gain uint32, bitDepth int) {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	off := bias(bitDepth)
	hi := int64(1)<<(bitDepth-1) - 1
	lo := -hi - 1
	for i, s := range samples {
		v := ((int64(s) - off) * int64(gain)) >> fixed.Shift
		if v > hi {
			v = hi
		} else if v < lo {
			v = lo
		}
		samples[i] = int(v + off)
	}
}

// NormalizeBuffer applies the gain for target to buf in place and returns it
func NormalizeBuffer(buf *audio.IntBuffer, target uint32) uint32 {
	if buf == nil {
		return fixed.Scale
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	g := Gain(buf.Data, depth, target)
	Apply(buf.Data, g, depth)
	return g
}
