package bank

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// Rand is the randomness capability used for shuffling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a ChaCha8 generator seeded from the OS entropy source.
func NewRand() Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

// NewSeededRand returns a reproducible generator for tests and replays.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a uniformly permuted copy of in (Fisher-Yates).
// A nil slice stays nil.
func Shuffle[T any](rng Rand, in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
