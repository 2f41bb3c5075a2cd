package engine

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every call, so traces can report how many
// draws a session has made.
type RNG struct {
	src *rand.Rand
	pos int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		src: rand.New(rand.NewSource(seed)),
	}
}

// Pick returns a uniformly chosen index in [0, n). n must be positive.
func (r *RNG) Pick(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
