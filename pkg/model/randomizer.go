package model

import (
	"math/rand/v2"
	"time"
)

// Randomizer is the timetabler's only source of randomness, so tests can make orderings deterministic.
// *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	// Returns a permutation of [0, n)
	Perm(n int) []int
	// Returns a uniform integer in [0, n)
	IntN(n int) int
}

// NewRandomizer returns a PCG-backed randomizer; a zero seed is replaced by the current time
func NewRandomizer(seed uint64) Randomizer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
