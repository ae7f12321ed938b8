//go:build linux

package contention

import "golang.org/x/sys/unix"

// pinToCPU restricts the calling thread to one CPU; the caller holds LockOSThread
func pinToCPU(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
