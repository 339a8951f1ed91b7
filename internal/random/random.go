// Package random provides the byte source used by the CHIP-8 RND instruction.
package random

import (
	"math/rand/v2"
	"time"
)

// Random is a pseudo random byte generator. A zero seed instance produces
// the same sequence on every run, which is useful for tests and for
// reproducing a recorded session.
type Random struct {
	rng *rand.Rand
}

// New returns a generator seeded from the current time.
func New() *Random {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// NewSeeded returns a generator that produces a fixed sequence for the seed.
func NewSeeded(seed uint64) *Random {
	return &Random{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Byte returns the next random byte.
func (r *Random) Byte() uint8 {
	return uint8(r.rng.Uint32() >> 24)
}
