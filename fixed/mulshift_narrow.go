//go:build narrowmul

package fixed

// mulShift routes every internal product through WideMultiply
func mulShift(a, b uint32, shift uint) uint32 {
	return MulShift(a, b, shift)
}

// NarrowMultiply reports whether internal products use the 32-bit WideMultiply path
const NarrowMultiply = true
