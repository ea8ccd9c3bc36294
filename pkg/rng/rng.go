// Package rng provides the seeded pseudo-random stream used by mark placement.
//
// The generator is a mulberry32 recurrence: a 32-bit state advanced by a fixed
// odd increment and mixed with two multiply-xorshift rounds. It is cheap,
// deterministic for a given seed, and byte-compatible across platforms, which
// is what makes stochastic styles reproducible.
//
// A Source is owned by exactly one render call and must not be shared between
// goroutines.
package rng

import "math/rand/v2"

// increment is the Weyl sequence step of mulberry32.
const increment = 0x6D2B79F5

// Source is a mulberry32 generator.
type Source struct {
	state uint32
}

// New returns a Source seeded with seed. Seed 0 is a valid seed.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// Uint32 returns the next 32 random bits.
func (s *Source) Uint32() uint32 {
	s.state += increment
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Uint64 combines two draws so a Source can back a math/rand/v2 Rand.
func (s *Source) Uint64() uint64 {
	hi := uint64(s.Uint32())
	return hi<<32 | uint64(s.Uint32())
}

// Float64 returns a float in [0,1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / 4294967296
}

// Range returns a float in [lo,hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Jitter returns a float in [-amount/2, amount/2).
func (s *Source) Jitter(amount float64) float64 {
	return (s.Float64() - 0.5) * amount
}

// Intn returns an int in [0,n). It returns 0 when n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Float64() * float64(n))
}

// IntRange returns an int in [lo,hi] inclusive.
func (s *Source) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

var _ rand.Source = (*Source)(nil)
