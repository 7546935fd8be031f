package engine

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// Source supplies the randomness used for integer and list item draws.
// Implemented by *rand.Rand (production) and testutil.SequenceSource (tests).
type Source interface {
	// Int64N returns a value in [0, n). n is always > 0.
	Int64N(n int64) int64
}

// pcgStream is mixed into the seed to derive the PCG stream selector.
const pcgStream = 0x9e3779b97f4a7c15

// NewSource returns a deterministic source for the given seed.
// The same seed always yields the same sequence of draws.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^pcgStream))
}

// NewRandomSource returns a source seeded from the operating system.
func NewRandomSource() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}
