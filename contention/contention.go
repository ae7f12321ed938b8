// Package contention demonstrates false sharing: workers that each touch only
// their own counter still slow each other down when the counters share a cache line.
package contention

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"
)

// Layout selects how per-worker counters are placed in memory
type Layout int

const (
	// Packed places counters in adjacent words, several per cache line
	Packed Layout = iota
	// Padded gives each counter its own cache line
	Padded
)

func (l Layout) String() string {
	switch l {
	case Packed:
		return "packed"
	case Padded:
		return "padded"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// cancelCheckMask controls how often workers poll for cancellation
const cancelCheckMask = 1<<16 - 1

type paddedCounter struct {
	value uint64
	_     cpu.CacheLinePad
}

// Options configures a Run
type Options struct {
	Workers    int
	Iterations uint64
	Layout     Layout
	Pin        bool // pin worker i to CPU i mod NumCPU
}

// Result reports the final counter values and wall time
type Result struct {
	Layout  Layout
	Counts  []uint64
	Elapsed time.Duration
}

// Run increments one counter per worker Iterations times.
// On cancellation the partial Result is returned with ctx.Err().
func Run(ctx context.Context, opt Options) (Result, error) {
	if opt.Workers <= 0 {
		return Result{}, fmt.Errorf("contention: workers must be positive, got %d", opt.Workers)
	}

	slots := make([]*uint64, opt.Workers)
	switch opt.Layout {
	case Packed:
		packed := make([]uint64, opt.Workers)
		for i := range slots {
			slots[i] = &packed[i]
		}
	case Padded:
		padded := make([]paddedCounter, opt.Workers)
		for i := range slots {
			slots[i] = &padded[i].value
		}
	default:
		return Result{}, fmt.Errorf("contention: unknown layout %v", opt.Layout)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var pinErr error
	numCPU := runtime.NumCPU()
	start := time.Now()

	for i := 0; i < opt.Workers; i++ {
		wg.Add(1)
		go func(id int, p *uint64) {
			defer wg.Done()

			if opt.Pin {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				if err := pinToCPU(id % numCPU); err != nil {
					mu.Lock()
					if pinErr == nil {
						pinErr = fmt.Errorf("contention: pin worker %d: %w", id, err)
					}
					mu.Unlock()
				}
			}

			for n := uint64(0); n < opt.Iterations; n++ {
				if n&cancelCheckMask == 0 && ctx.Err() != nil {
					return
				}
				atomic.AddUint64(p, 1)
			}
		}(i, slots[i])
	}
	wg.Wait()

	res := Result{
		Layout:  opt.Layout,
		Counts:  make([]uint64, opt.Workers),
		Elapsed: time.Since(start),
	}
	for i, p := range slots {
		res.Counts[i] = atomic.LoadUint64(p)
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, pinErr
}

// Compare runs the packed and padded layouts back to back with the same options
func Compare(ctx context.Context, opt Options) (packed, padded Result, err error) {
	opt.Layout = Packed
	if packed, err = Run(ctx, opt); err != nil {
		return packed, padded, err
	}
	opt.Layout = Padded
	padded, err = Run(ctx, opt)
	return packed, padded, err
}
