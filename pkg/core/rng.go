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

// Derive returns an independent deterministic stream keyed by stream. Each
// subsystem draws from its own stream so adding draws in one never shifts
// another.
func (r *RNG) Derive(stream uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(r.r.Uint64(), stream))}
}

// Float64 returns a uniform sample in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// IntN returns a uniform integer in [0, n). n <= 0 yields 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}
