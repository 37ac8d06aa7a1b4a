package cpu

import (
	"math/rand"
	"time"
)

// RandomSource yields the random bytes consumed by the RND instruction.
type RandomSource interface {
	NextByte() byte
}

// Rand is a RandomSource backed by math/rand.
type Rand struct {
	rng *rand.Rand
}

// NewRand creates a random source with the given seed.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeRand creates a random source seeded from the wall clock.
func NewTimeRand() *Rand {
	return NewRand(time.Now().UnixNano())
}

// NextByte returns a uniformly distributed byte.
func (r *Rand) NextByte() byte {
	return byte(r.rng.Intn(256))
}
