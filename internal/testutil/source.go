package testutil

import (
	"fmt"
	"sync"
)

// SequenceSource returns predetermined draws for engine tests.
//
// Each call to Int64N consumes the next value. This makes every random
// decision of a generation explicit in the test:
//
//	src := NewSequenceSource(0, 2)
//	src.Int64N(10) // 0
//	src.Int64N(3)  // 2
//	src.Int64N(3)  // panic: all draws consumed
//
// Panics when the sequence is exhausted or a value is outside [0, n). This
// is a fail-fast approach to catch tests whose expected draw count is wrong.
//
// Thread-safety: SequenceSource is safe for concurrent use via internal mutex.
type SequenceSource struct {
	mu    sync.Mutex
	draws []int64
	idx   int
	seen  []int64 // n of each call, for assertions
}

// NewSequenceSource creates a source that returns draws in order.
func NewSequenceSource(draws ...int64) *SequenceSource {
	return &SequenceSource{draws: draws}
}

// Int64N returns the next predetermined draw.
func (s *SequenceSource) Int64N(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx >= len(s.draws) {
		panic(fmt.Sprintf("SequenceSource: all %d draws consumed", len(s.draws)))
	}
	v := s.draws[s.idx]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("SequenceSource: draw %d = %d outside [0, %d)", s.idx, v, n))
	}
	s.idx++
	s.seen = append(s.seen, n)
	return v
}

// Consumed returns how many draws have been used.
func (s *SequenceSource) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx
}

// Bounds returns the n passed to each Int64N call so far.
func (s *SequenceSource) Bounds() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.seen))
	copy(out, s.seen)
	return out
}

// ConstSource always returns the same draw, clamped to [0, n).
// Useful for property-style loops where the exact draw count is irrelevant.
type ConstSource int64

// Int64N returns the constant, clamped to n-1.
func (c ConstSource) Int64N(n int64) int64 {
	v := int64(c)
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
