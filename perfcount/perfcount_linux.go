//go:build linux

package perfcount

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/AnnTaiwan/computer-arch/harness"
)

// Open starts cycle and instruction counters for the calling thread, user space only
func Open() (*Counters, error) {
	runtime.LockOSThread()

	cycles, err := openEvent(unix.PERF_COUNT_HW_CPU_CYCLES)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	instret, err := openEvent(unix.PERF_COUNT_HW_INSTRUCTIONS)
	if err != nil {
		unix.Close(cycles)
		runtime.UnlockOSThread()
		return nil, err
	}

	return &Counters{cycles: cycles, instret: instret}, nil
}

func openEvent(config uint64) (int, error) {
	attr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config: config,
		Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return -1, fmt.Errorf("%w: perf_event_open config %d: %v", ErrUnsupported, config, err)
	}
	return fd, nil
}

// Start resets and enables both counters
func (c *Counters) Start() error {
	if c.closed {
		return fmt.Errorf("perfcount: start on closed counters")
	}
	for _, fd := range []int{c.cycles, c.instret} {
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
			return fmt.Errorf("perfcount: reset: %w", err)
		}
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
			return fmt.Errorf("perfcount: enable: %w", err)
		}
	}
	return nil
}

// Stop disables both counters and returns their values since Start
func (c *Counters) Stop() (harness.Sample, error) {
	var s harness.Sample
	if c.closed {
		return s, fmt.Errorf("perfcount: stop on closed counters")
	}

	// Disable instructions first so the cycle disable is not counted as retired work
	for _, fd := range []int{c.instret, c.cycles} {
		if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0); err != nil {
			return s, fmt.Errorf("perfcount: disable: %w", err)
		}
	}

	var err error
	if s.Cycles, err = readCounter(c.cycles); err != nil {
		return s, err
	}
	if s.Instructions, err = readCounter(c.instret); err != nil {
		return s, err
	}
	return s, nil
}

func readCounter(fd int) (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(fd, buf[:])
	if err != nil {
		return 0, fmt.Errorf("perfcount: read: %w", err)
	}
	if n != len(buf) {
		return 0, fmt.Errorf("perfcount: short read (%d bytes)", n)
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}

// Close releases both counters and unlocks the goroutine from its thread
func (c *Counters) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	err1 := unix.Close(c.cycles)
	err2 := unix.Close(c.instret)
	runtime.UnlockOSThread()
	if err1 != nil {
		return err1
	}
	return err2
}
