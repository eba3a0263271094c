// Package rng provides the seeded pseudo-random source that every random
// decision in the engine draws from. It implements Mulberry32 so sequences are
// reproducible bit for bit from a 32-bit seed.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math"
)

// Generator is a Mulberry32 generator. The zero value is a valid generator
// seeded with 0.
type Generator struct {
	state uint32
}

// New creates a generator seeded with seed.
func New(seed uint32) *Generator {
	return &Generator{state: seed}
}

// State returns the current internal state.
func (g *Generator) State() uint32 {
	return g.state
}

// Next returns the next value in [0, 1).
func (g *Generator) Next() float64 {
	g.state += 0x6D2B79F5
	t := g.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// NextInt returns floor(Next()*n). Returns 0 when n <= 0.
func (g *Generator) NextInt(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.Next() * float64(n))
}

// NextIntRange returns an integer in [lo, hi] inclusive.
func (g *Generator) NextIntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + g.NextInt(hi-lo+1)
}

// Shuffle performs an in-place Fisher-Yates shuffle over n elements,
// calling swap to exchange positions i and j.
func (g *Generator) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := g.NextInt(i + 1)
		swap(i, j)
	}
}

// Clone returns an independent generator starting from the current state.
func (g *Generator) Clone() *Generator {
	return &Generator{state: g.state}
}

// RandomSeed derives a seed from the operating system's entropy source.
// It is used only when the operator does not supply one.
func RandomSeed() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0x2545F491
	}
	return binary.LittleEndian.Uint32(b[:])
}

// ClampSeed clamps an operator-supplied seed into the uint32 range.
func ClampSeed(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
