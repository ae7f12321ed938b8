// Package harness drives a reciprocal square root implementation over a fixed
// set of test vectors, brackets every call with a Counter and reports the error
// as an integer percentage with remainder.
package harness

import (
	"fmt"
	"io"
	"time"
)

// Vector is one reference input with its exact result scaled by 10 for one decimal digit
type Vector struct {
	In        uint32 `toml:"in"`
	Exact10   uint32 `toml:"exact10"`
	ExactText string `toml:"exact"`
}

// ReferenceVectors returns the default test inputs with their exact values
func ReferenceVectors() []Vector {
	return []Vector{
		{In: 1, Exact10: 655360, ExactText: "65536"},
		{In: 4, Exact10: 327680, ExactText: "32768"},
		{In: 16, Exact10: 163840, ExactText: "16384"},
		{In: 20, Exact10: 146542, ExactText: "14654.2"},
		{In: 100, Exact10: 65536, ExactText: "6553.6"},
		{In: 258, Exact10: 40800, ExactText: "4080"},
		{In: 650, Exact10: 25705, ExactText: "2570.5"},
	}
}

// Sample holds counter deltas for one measured region
type Sample struct {
	Cycles       uint64
	Instructions uint64
}

// Counter brackets a measured region.
// Implementations are not safe for concurrent use.
type Counter interface {
	Start() error
	Stop() (Sample, error)
}

// Clock is a Counter backed by the monotonic clock.
// Cycles are reported in nanoseconds and Instructions are always zero.
type Clock struct {
	start time.Time
}

func (c *Clock) Start() error {
	c.start = time.Now()
	return nil
}

func (c *Clock) Stop() (Sample, error) {
	return Sample{Cycles: uint64(time.Since(c.start))}, nil
}

// Result is one measured call
type Result struct {
	Vector
	Got uint32

	// ErrorPct and Remainder are the quotient and remainder of
	// |Got*10 - Exact10| * 100 / Exact10
	ErrorPct  uint64
	Remainder uint64

	Sample
}

// Run calls fn once per vector between c.Start and c.Stop
func Run(c Counter, fn func(uint32) uint32, vectors []Vector) ([]Result, error) {
	results := make([]Result, 0, len(vectors))
	for _, v := range vectors {
		if err := c.Start(); err != nil {
			return results, fmt.Errorf("counter start for %d: %w", v.In, err)
		}
		got := fn(v.In)
		s, err := c.Stop()
		if err != nil {
			return results, fmt.Errorf("counter stop for %d: %w", v.In, err)
		}

		r := Result{Vector: v, Got: got, Sample: s}
		r.ErrorPct, r.Remainder = errorPercent(got, v.Exact10)
		results = append(results, r)
	}
	return results, nil
}

// errorPercent scales got by 10 to match exact10 and splits the percentage into quotient and remainder
func errorPercent(got, exact10 uint32) (pct, rem uint64) {
	if exact10 == 0 {
		return 0, 0
	}
	scaled := uint64(got) * 10
	e := uint64(exact10)
	var diff uint64
	if scaled > e {
		diff = scaled - e
	} else {
		diff = e - scaled
	}
	diff *= 100
	return diff / e, diff % e
}

// PassPercent is the integer error percentage a result must stay below to pass
const PassPercent = 1

// Passed reports whether every result is within PassPercent
func Passed(results []Result) bool {
	for _, r := range results {
		if r.ErrorPct >= PassPercent {
			return false
		}
	}
	return true
}

// WriteReport prints a header, one tab-indented line per result with its counters
// and a closing PASSED or FAILED verdict
func WriteReport(w io.Writer, name string, results []Result) error {
	if _, err := fmt.Fprintf(w, "Test: %s\n", name); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Error percentages are truncated by integer division, the remainder shows the lost fraction."); err != nil {
		return err
	}
	for _, r := range results {
		_, err := fmt.Fprintf(w, "\t%s(%d) = %d (exact: %s), Approximately Error = %d%%, Remainder = %d/%d,\tCycles: %d, Instructions: %d\n",
			name, r.In, r.Got, r.ExactText, r.ErrorPct, r.Remainder, r.Exact10, r.Cycles, r.Instructions)
		if err != nil {
			return err
		}
	}

	verdict := "PASSED"
	if !Passed(results) {
		verdict = "FAILED"
	}
	_, err := fmt.Fprintf(w, "  %s: %s\n", name, verdict)
	return err
}
