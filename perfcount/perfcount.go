// Package perfcount reads the CPU cycle and retired instruction counters around
// a measured region, the user space counterpart of rdcycle/rdinstret.
package perfcount

import (
	"errors"

	"github.com/AnnTaiwan/computer-arch/harness"
)

// ErrUnsupported is returned when hardware counters cannot be opened on this
// platform or under the current perf_event_paranoid setting
var ErrUnsupported = errors.New("perfcount: hardware counters unavailable")

// Counters implements harness.Counter with hardware performance counters.
// The counters follow the OS thread that opened them, so Open locks the calling
// goroutine to its thread until Close.
type Counters struct {
	cycles  int
	instret int
	closed  bool
}

var _ harness.Counter = (*Counters)(nil)

// OpenOrClock returns hardware counters when available and a wall clock counter otherwise.
// The returned close function is always safe to call.
func OpenOrClock() (harness.Counter, func() error, error) {
	c, err := Open()
	if err != nil {
		return &harness.Clock{}, func() error { return nil }, err
	}
	return c, c.Close, nil
}
