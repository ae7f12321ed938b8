package fixed

// Rsqrt returns 65536/sqrt(x), the reciprocal square root of an integer x in Q16.16.
//
// Rsqrt(0) is Inf and Rsqrt(1) is exactly Scale. Everything else is seeded from
// the power-of-two table, blended linearly toward the next entry and refined with
// two Newton-Raphson steps y = y*(3 - x*y*y)/2. Safe for concurrent use.
func Rsqrt(x uint32) uint32 {
	if x == 0 {
		return Inf
	}
	if x == 1 {
		return Scale
	}

	exp := 31 - CountLeadingZeros(x)
	y := rsqrtTable[exp]

	// Linear interpolation between 2^exp and 2^(exp+1)
	if base := uint32(1) << exp; x > base {
		delta := y - tableNext(exp)
		// Two separate shifts: the left shift may drop high bits before the right shift
		frac := ((x - base) << 16) >> exp
		y -= (delta * frac) >> 16
	}

	for i := 0; i < newtonSteps; i++ {
		y2 := mulShift(y, y, 0)
		xy2 := mulShift(x, y2, Shift)
		term := Three - xy2
		// >> 17 folds the halving into the Q16.16 rescale
		y = mulShift(y, term, Shift+1)
	}

	return y
}

const newtonSteps = 2
