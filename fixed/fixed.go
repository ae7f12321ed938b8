package fixed

import (
	"math"
	"math/bits"
)

// Q16.16 unsigned fixed point constants
const (
	Shift = 16
	Scale = 1 << Shift
	Mask  = Scale - 1
	Half  = 1 << (Shift - 1)
	Three = 3 << Shift

	// Inf is returned by Rsqrt(0); no finite reciprocal exists
	Inf = math.MaxUint32
)

// --- Conversion ---

func FromInt(i int) uint32       { return uint32(i) << Shift }
func ToInt(f uint32) int         { return int(f >> Shift) }
func FromFloat(f float64) uint32 { return uint32(f * Scale) }
func ToFloat(f uint32) float64   { return float64(f) / Scale }

// --- Bit width helpers ---

// CountLeadingZeros returns the number of zero bits above the highest set bit of x, 32 for x == 0.
// Binary search over halving widths, no clz instruction required.
func CountLeadingZeros(x uint32) int {
	if x == 0 {
		return 32
	}
	n := 0
	if x&0xFFFF0000 == 0 {
		n += 16
		x <<= 16
	}
	if x&0xFF000000 == 0 {
		n += 8
		x <<= 8
	}
	if x&0xF0000000 == 0 {
		n += 4
		x <<= 4
	}
	if x&0xC0000000 == 0 {
		n += 2
		x <<= 2
	}
	if x&0x80000000 == 0 {
		n++
	}
	return n
}

// WideMultiply returns the exact 64-bit product of a and b as two 32-bit words.
// Built from four 16x16 partial products so no operation is wider than 32 bits.
func WideMultiply(a, b uint32) (hi, lo uint32) {
	aHi, aLo := a>>16, a&0xFFFF
	bHi, bLo := b>>16, b&0xFFFF

	p0 := aLo * bLo
	p1 := aLo * bHi
	p2 := aHi * bLo
	p3 := aHi * bHi

	// Carry out of bits 16..31 lands in mid>>16
	mid := (p1 & 0xFFFF) + (p2 & 0xFFFF) + (p0 >> 16)
	lo = (p0 & 0xFFFF) | (mid << 16)
	hi = p3 + (p1 >> 16) + (p2 >> 16) + (mid >> 16)
	return hi, lo
}

// MulShift returns the low 32 bits of (a*b) >> shift using WideMultiply.
// Shift amounts of 32 and above only ever shift the high word, never by 32 or more.
func MulShift(a, b uint32, shift uint) uint32 {
	hi, lo := WideMultiply(a, b)
	switch {
	case shift == 0:
		return lo
	case shift < 32:
		return (lo >> shift) | (hi << (32 - shift))
	case shift < 64:
		return hi >> (shift - 32)
	}
	return 0
}

// --- Arithmetic ---

// Mul returns the Q16.16 product of a and b, truncated to 32 bits
func Mul(a, b uint32) uint32 {
	return mulShift(a, b, Shift)
}

// Sqrt returns sqrt(x) in Q16.16 for an integer x, computed as x * Rsqrt(x).
// Saturates at Inf when the rounding error of Rsqrt pushes the product past 32 bits.
func Sqrt(x uint32) uint32 {
	if x == 0 {
		return 0
	}
	hi, lo := bits.Mul32(x, Rsqrt(x))
	if hi != 0 {
		return Inf
	}
	return lo
}

// InvMagnitude returns Rsqrt(dx*dx + dy*dy) for integer components.
// A sum of squares beyond 32 bits saturates to the largest representable magnitude;
// the zero vector yields Inf.
func InvMagnitude(dx, dy uint32) uint32 {
	hx, lx := bits.Mul32(dx, dx)
	hy, ly := bits.Mul32(dy, dy)
	sum, carry := bits.Add32(lx, ly, 0)
	if hx|hy|carry != 0 {
		sum = math.MaxUint32
	}
	return Rsqrt(sum)
}

// RelativeError reports |got - 65536/sqrt(x)| / (65536/sqrt(x)) for diagnostics.
// x == 0 compares against the Inf sentinel: 0 if got is Inf, 1 otherwise.
func RelativeError(x, got uint32) float64 {
	if x == 0 {
		if got == Inf {
			return 0
		}
		return 1
	}
	exact := Scale / math.Sqrt(float64(x))
	return math.Abs(float64(got)-exact) / exact
}
