package fixed

// RsqrtTableSize is the number of power-of-two exponents covered by the seed table
const RsqrtTableSize = 32

// rsqrtTable[e] ~ 65536 / sqrt(2^e), non-increasing in e
var rsqrtTable = [RsqrtTableSize]uint32{
	65536, 46341, 32768, 23170, 16384, // 2^0 .. 2^4
	11585, 8192, 5793, 4096, 2896,     // 2^5 .. 2^9
	2048, 1448, 1024, 724, 512,        // 2^10 .. 2^14
	362, 256, 181, 128, 90,            // 2^15 .. 2^19
	64, 45, 32, 23, 16,                // 2^20 .. 2^24
	11, 8, 6, 4, 3,                    // 2^25 .. 2^29
	2, 1,                              // 2^30, 2^31
}

// Table returns a copy of the reciprocal square root seed table
func Table() [RsqrtTableSize]uint32 {
	return rsqrtTable
}

// tableNext returns the entry after e, 0 past the end of the table
func tableNext(e int) uint32 {
	if e+1 < RsqrtTableSize {
		return rsqrtTable[e+1]
	}
	return 0
}
