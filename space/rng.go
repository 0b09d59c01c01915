// SPDX-License-Identifier: MIT

package space

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// RandomSource supplies the random draws a space needs. *rand.Rand from
// math/rand/v2 satisfies it. It is not safe for concurrent use.
type RandomSource interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// pcgStream is the fixed PCG increment; the seed alone selects the sequence.
const pcgStream = 0x6c76737061636521

// NewRandomSource returns a PCG-backed source. Equal seeds yield equal sequences.
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// EntropySeed draws a fresh non-negative seed from crypto/rand, falling back
// to the runtime-seeded math/rand/v2 generator if the system source fails.
func EntropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Int64()
	}

	return int64(binary.LittleEndian.Uint64(b[:]) & math.MaxInt64)
}

// base carries the RandomSource every space owns. The zero value is an
// unseeded space; the source is created from entropy on first use.
type base struct {
	rng RandomSource
}

// RNG returns the space's own RandomSource, creating it from entropy if the
// space was never seeded.
func (b *base) RNG() RandomSource {
	if b.rng == nil {
		b.rng = NewRandomSource(EntropySeed())
	}

	return b.rng
}

// reseed replaces the source. A nil seed draws fresh entropy. The seed that
// was actually used is returned.
func (b *base) reseed(seed *int64) int64 {
	s := EntropySeed()
	if seed != nil {
		s = *seed
	}
	b.rng = NewRandomSource(s)

	return s
}
