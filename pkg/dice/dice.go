// Package dice provides the randomness abstraction used by the market and
// encounter engines, so every random draw can be replayed in tests.
package dice

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the randomness provider for all game rolls.
type Source interface {
	// IntN returns a non-negative random int in [0, n). n must be > 0.
	IntN(n int) int
}

// Between returns a uniform integer in the closed range [lo, hi].
// When hi < lo the bounds are swapped.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Seeded is a PCG-backed Source. The same seed yields the same game.
type Seeded struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeeded creates a deterministic source. A zero seed is replaced with the
// current time.
func NewSeeded(seed uint64) *Seeded {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Seeded{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN implements Source.
func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

// Sequence replays a fixed list of draws. Each value is reduced modulo n so the
// result always satisfies the Source contract; once exhausted it returns 0.
type Sequence struct {
	values []int
	pos    int
}

// NewSequence returns a Source that yields values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// IntN implements Source.
func (s *Sequence) IntN(n int) int {
	if s.pos >= len(s.values) {
		return 0
	}
	v := s.values[s.pos]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Remaining reports how many preset draws are left.
func (s *Sequence) Remaining() int {
	return len(s.values) - s.pos
}
