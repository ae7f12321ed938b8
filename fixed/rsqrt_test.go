package fixed

import (
	"math"
	"math/rand"
	"sync"
	"testing"
)

// TestRsqrtSentinels verifies the exact edge cases
func TestRsqrtSentinels(t *testing.T) {
	if got := Rsqrt(0); got != 0xFFFFFFFF {
		t.Errorf("Rsqrt(0) = %#x, want 0xFFFFFFFF", got)
	}
	if got := Rsqrt(1); got != 65536 {
		t.Errorf("Rsqrt(1) = %d, want 65536", got)
	}
}

// TestRsqrtKnownValues pins the output for the reference inputs and a few extremes
func TestRsqrtKnownValues(t *testing.T) {
	tests := []struct {
		x, want uint32
	}{
		{2, 46341},
		{3, 37836},
		{4, 32768},
		{5, 29308},
		{7, 24770},
		{9, 21845},
		{16, 16384},
		{20, 14654},
		{31, 11770},
		{33, 11408},
		{100, 6553},
		{258, 4080},
		{650, 2570},
		{1000, 2072},
		{65535, 255},
		{65536, 256},
		{100000, 207},
		{1 << 31, 1},
		{0xFFFFFFFE, 1},
		{0xFFFFFFFF, 1},
	}
	for _, tt := range tests {
		if got := Rsqrt(tt.x); got != tt.want {
			t.Errorf("Rsqrt(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

// TestRsqrtPowersOfTwo verifies exact powers of two stay on the refined table value
func TestRsqrtPowersOfTwo(t *testing.T) {
	want := [32]uint32{
		65536, 46341, 32768, 23170, 16384, 11585, 8192, 5792,
		4096, 2896, 2048, 1448, 1024, 724, 512, 362,
		256, 181, 128, 90, 64, 45, 32, 22,
		16, 11, 8, 5, 4, 2, 2, 1,
	}
	for k := 0; k < 32; k++ {
		if got := Rsqrt(1 << k); got != want[k] {
			t.Errorf("Rsqrt(1<<%d) = %d, want %d", k, got, want[k])
		}
	}
}

// TestRsqrtTableMonotonic verifies the seed table never increases
func TestRsqrtTableMonotonic(t *testing.T) {
	table := Table()
	for e := 1; e < RsqrtTableSize; e++ {
		if table[e] > table[e-1] {
			t.Errorf("table[%d] = %d > table[%d] = %d", e, table[e], e-1, table[e-1])
		}
	}
	for e := 0; e < RsqrtTableSize; e++ {
		exact := 65536 / math.Sqrt(math.Ldexp(1, e))
		if math.Abs(float64(table[e])-exact) > 1 {
			t.Errorf("table[%d] = %d, exact %.2f", e, table[e], exact)
		}
	}

	// Table returns a copy
	table[0] = 0
	if Table()[0] != 65536 {
		t.Error("Table() exposed the shared table")
	}
}

// TestRsqrtMonotonic verifies the result never increases with x.
// Below 2^16 the result is strictly non-increasing; above it outputs are a few LSB wide
// and truncation produces small steps back up, bounded here.
func TestRsqrtMonotonic(t *testing.T) {
	prev := Rsqrt(1)
	for x := uint32(2); x < 1<<16; x++ {
		got := Rsqrt(x)
		if got > prev {
			t.Fatalf("Rsqrt(%d) = %d > Rsqrt(%d) = %d", x, got, x-1, prev)
		}
		prev = got
	}

	const slack = 8
	for x := uint32(1 << 16); x < 1<<22; x++ {
		got := Rsqrt(x)
		if got > prev+slack {
			t.Fatalf("Rsqrt(%d) = %d exceeds Rsqrt(%d) = %d by more than %d", x, got, x-1, prev, slack)
		}
		prev = got
	}
}

// TestRsqrtAccuracy characterises the error against 65536/sqrt(x)
func TestRsqrtAccuracy(t *testing.T) {
	// Relative error is tight while the result has enough bits
	worst, worstX := 0.0, uint32(0)
	for x := uint32(1); x <= 1<<16; x++ {
		if e := RelativeError(x, Rsqrt(x)); e > worst {
			worst, worstX = e, x
		}
	}
	if worst > 0.005 {
		t.Errorf("relative error %.4f%% at x=%d exceeds 0.5%%", worst*100, worstX)
	}

	// The default test vectors stay within 0.1%
	for _, x := range []uint32{1, 4, 16, 20, 100, 258, 650} {
		if e := RelativeError(x, Rsqrt(x)); e > 0.001 {
			t.Errorf("Rsqrt(%d) relative error %.4f%%", x, e*100)
		}
	}

	// Over the full range the absolute error stays within a few LSB
	const maxAbs = 8.0
	check := func(x uint32) {
		t.Helper()
		got := Rsqrt(x)
		exact := 65536 / math.Sqrt(float64(x))
		if d := math.Abs(float64(got) - exact); d > maxAbs {
			t.Fatalf("Rsqrt(%d) = %d, exact %.3f, abs error %.3f", x, got, exact, d)
		}
	}
	for x := uint64(1); x <= math.MaxUint32; x += 65521 {
		check(uint32(x))
	}
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 200000; i++ {
		if x := r.Uint32(); x != 0 {
			check(x)
		}
	}
}

// TestRsqrtDeterministic verifies repeated and concurrent calls agree
func TestRsqrtDeterministic(t *testing.T) {
	inputs := make([]uint32, 4096)
	want := make([]uint32, len(inputs))
	r := rand.New(rand.NewSource(5))
	for i := range inputs {
		inputs[i] = r.Uint32()
		want[i] = Rsqrt(inputs[i])
	}

	var wg sync.WaitGroup
	errs := make(chan uint32, len(inputs))
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, x := range inputs {
				if Rsqrt(x) != want[i] {
					errs <- x
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for x := range errs {
		t.Errorf("Rsqrt(%d) changed between calls", x)
	}
}

// TestRsqrtTotal verifies no input panics, sampled across the whole domain
func TestRsqrtTotal(t *testing.T) {
	for x := uint64(0); x <= math.MaxUint32; x += 1<<20 - 3 {
		_ = Rsqrt(uint32(x))
	}
	_ = Rsqrt(math.MaxUint32)
}

func BenchmarkRsqrt(b *testing.B) {
	var sink uint32
	for i := 0; i < b.N; i++ {
		sink = Rsqrt(uint32(i) | 1)
	}
	_ = sink
}

func BenchmarkRsqrtFloat(b *testing.B) {
	var sink float64
	for i := 0; i < b.N; i++ {
		sink = 65536 / math.Sqrt(float64(uint32(i)|1))
	}
	_ = sink
}

func BenchmarkWideMultiply(b *testing.B) {
	var hi, lo uint32
	for i := 0; i < b.N; i++ {
		hi, lo = WideMultiply(uint32(i), 0x9E3779B9)
	}
	_, _ = hi, lo
}
