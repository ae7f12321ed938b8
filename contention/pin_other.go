//go:build !linux

package contention

// pinToCPU is a no-op where thread affinity is not exposed
func pinToCPU(cpu int) error {
	return nil
}
