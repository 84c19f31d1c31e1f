package testutil

import (
	"context"
	"sync"
)

// Sequence yields the given values in order from successive calls, repeating
// the final value once the script is exhausted. It is safe for concurrent
// use, although the clients under test poll sequentially.
type Sequence[T any] struct {
	mu     sync.Mutex
	values []T
	next   int
}

// NewSequence builds a Sequence over the given values. At least one value is
// required.
func NewSequence[T any](values ...T) *Sequence[T] {
	if len(values) == 0 {
		panic("testutil: NewSequence requires at least one value")
	}
	return &Sequence[T]{values: values}
}

// Next returns the next scripted value.
func (s *Sequence[T]) Next() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

// Calls reports how many values have been handed out so far.
func (s *Sequence[T]) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next + 1
}

// CallRecorder counts invocations of a release or stop function and returns
// a configurable error.
type CallRecorder struct {
	mu    sync.Mutex
	calls int

	// Err is returned from Call when set.
	Err error
}

// Call records one invocation.
func (r *CallRecorder) Call(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.Err
}

// Calls returns the number of recorded invocations.
func (r *CallRecorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
