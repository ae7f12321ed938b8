// Package fixed implements unsigned Q16.16 fixed point arithmetic centred on a
// table driven reciprocal square root.
//
// Rsqrt seeds from a 32 entry power-of-two table, interpolates linearly
// between neighbouring entries and refines with two Newton-Raphson steps. All
// intermediate work is 32-bit; products that need 64 bits go through
// MulShift. Building with the narrowmul tag routes the internal products
// through WideMultiply instead of native 64-bit multiplication, for targets
// whose compilers cannot lower 64-bit shifts. Results are bit-identical either
// way.
package fixed
