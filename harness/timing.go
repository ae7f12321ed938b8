package harness

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/AnnTaiwan/computer-arch/fixed"
)

// Timing runs fixed.Rsqrt and the float64 equivalent over inputs for the given iterations
func Timing(iterations int, inputs []uint32) (fixedTime, floatTime time.Duration) {
	if len(inputs) == 0 {
		return 0, 0
	}

	start := time.Now()
	var rQ uint32
	for i := 0; i < iterations; i++ {
		rQ = fixed.Rsqrt(inputs[i%len(inputs)])
	}
	fixedTime = time.Since(start)

	start = time.Now()
	var rF float64
	for i := 0; i < iterations; i++ {
		rF = fixed.Scale / math.Sqrt(float64(inputs[i%len(inputs)]))
	}
	floatTime = time.Since(start)

	_, _ = rQ, rF
	return fixedTime, floatTime
}

// WriteTimingHeader prints the column header for WriteTiming rows
func WriteTimingHeader(w io.Writer) {
	fmt.Fprintf(w, "%-28s %14s %14s %10s\n", "Operation", "Q16.16", "float64", "Ratio")
	fmt.Fprintln(w, "──────────────────────────────────────────────────────────────────────")
}

// WriteTiming prints one row comparing fixed and float durations
func WriteTiming(w io.Writer, name string, fixedTime, floatTime time.Duration) {
	ratio := 0.0
	if floatTime > 0 {
		ratio = float64(fixedTime) / float64(floatTime)
	}
	fmt.Fprintf(w, "%-28s %14s %14s %9.2fx\n", name, fixedTime, floatTime, ratio)
}
