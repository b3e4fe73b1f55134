package rng

import "math/rand"

// Seeded is a Generator backed by math/rand with a known seed.
// It is intended for tests and simulations where reproducibility matters
// more than cryptographic quality.
type Seeded struct {
	rnd *rand.Rand
}

// NewSeeded returns a Seeded generator for the given seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rnd: rand.New(rand.NewSource(seed))} // nolint:gosec
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.rnd.Intn(n)
}

// Float64 returns a random number in [0.0, 1.0)
func (s *Seeded) Float64() float64 {
	return s.rnd.Float64()
}
