// Package reduction holds the shared accumulators that parallel workers merge
// their local results into, and the combiners for the supported reductions.
//
// A Shared value owns exactly one mutex. The lock is held only while a
// combiner folds one local result into the accumulator; the expensive local
// reduction always runs outside of it.
package reduction

import (
	"sync"
	"time"
)

// Combiner folds a worker's local result into an accumulator.
//
// Identity returns a fresh accumulator that does not affect the first
// Combine. Combine must be O(1) in the size of the dataset: it runs inside
// the critical section.
type Combiner[R any] interface {
	Identity() R
	Combine(acc *R, local R, workerID int)
}

// Shared is a mutex-protected accumulator shared by all workers of one run.
type Shared[R any] struct {
	mu     sync.Mutex
	value  R
	merges int
}

// NewShared returns a Shared initialised to identity. It must be created
// before any worker that merges into it is started.
func NewShared[R any](identity R) *Shared[R] {
	return &Shared[R]{value: identity}
}

// Merge runs fn on the accumulator under the lock and returns how long the
// caller waited to acquire it. The lock is released on every exit path,
// including a panic in fn.
func (s *Shared[R]) Merge(fn func(acc *R)) time.Duration {
	requested := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	wait := time.Since(requested)

	fn(&s.value)
	s.merges++
	return wait
}

// Value returns the accumulator. Once every worker has been joined the
// result is final.
func (s *Shared[R]) Value() R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Merges returns how many merges completed.
func (s *Shared[R]) Merges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merges
}
