package model

import "math/rand/v2"

// Source is the random source consumed by Grid.Randomize. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewRand creates a deterministic PCG-backed generator for the given seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
