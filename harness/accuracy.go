package harness

import (
	"math"

	"github.com/AnnTaiwan/computer-arch/fixed"
)

// Accuracy summarises a sweep of fixed.Rsqrt against 65536/sqrt(x)
type Accuracy struct {
	Samples     int
	MaxRelErr   float64
	MeanRelErr  float64
	MaxAbsErr   float64
	WorstInput  uint32
	Violations  int // samples where the result rose above the previous sample
	MaxIncrease uint32
}

// Characterize sweeps [lo, hi] in steps of step. lo == 0 is skipped since Rsqrt(0) is a sentinel.
func Characterize(lo, hi, step uint32) Accuracy {
	var acc Accuracy
	if step == 0 {
		step = 1
	}
	if lo == 0 {
		lo = 1
	}

	var sum float64
	var prev uint32
	for x := uint64(lo); x <= uint64(hi); x += uint64(step) {
		got := fixed.Rsqrt(uint32(x))
		exact := fixed.Scale / math.Sqrt(float64(x))

		abs := math.Abs(float64(got) - exact)
		rel := abs / exact
		sum += rel
		if rel > acc.MaxRelErr {
			acc.MaxRelErr = rel
			acc.WorstInput = uint32(x)
		}
		if abs > acc.MaxAbsErr {
			acc.MaxAbsErr = abs
		}
		if acc.Samples > 0 && got > prev {
			acc.Violations++
			if d := got - prev; d > acc.MaxIncrease {
				acc.MaxIncrease = d
			}
		}
		prev = got
		acc.Samples++
	}

	if acc.Samples > 0 {
		acc.MeanRelErr = sum / float64(acc.Samples)
	}
	return acc
}
