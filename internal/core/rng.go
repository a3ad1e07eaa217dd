package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.r.Float64() < p
}

// IntN returns a random int in [0, n).
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Range returns a random float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Float64()*(hi-lo)
}
