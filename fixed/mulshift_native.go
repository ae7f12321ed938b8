//go:build !narrowmul

package fixed

// mulShift returns the low 32 bits of (a*b) >> shift using a native 64-bit product
func mulShift(a, b uint32, shift uint) uint32 {
	if shift >= 64 {
		return 0
	}
	return uint32((uint64(a) * uint64(b)) >> shift)
}

// NarrowMultiply reports whether internal products use the 32-bit WideMultiply path
const NarrowMultiply = false
