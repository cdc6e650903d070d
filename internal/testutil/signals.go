package testutil

import "math/rand"

// Map applies f to every element of x.
func Map(x []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f(v)
	}
	return out
}

// DeterministicUniform returns n values drawn uniformly from [lo, hi) with a
// fixed seed.
func DeterministicUniform(seed int64, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = lo + (hi-lo)*rng.Float64()
	}
	return out
}

// DeterministicEdges returns n+1 strictly increasing edges from lo to hi
// with randomly jittered interior positions.
func DeterministicEdges(seed int64, lo, hi float64, n int) []float64 {
	widths := DeterministicUniform(seed, 0.5, 1.5, n)
	total := 0.0
	for _, w := range widths {
		total += w
	}

	out := make([]float64, n+1)
	out[0] = lo
	acc := 0.0
	for i, w := range widths[:n-1] {
		acc += w
		out[i+1] = lo + (hi-lo)*acc/total
	}
	out[n] = hi
	return out
}
