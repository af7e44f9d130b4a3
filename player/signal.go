package player

import "sync"

// Signal is a single-slot latest-value cell. Set overwrites the slot and
// never blocks; readers only ever observe the most recent value, so rapid
// writes coalesce. Changed returns a channel that closes on the next Set,
// which lets any number of observers wait without consuming the value.
type Signal[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	changed chan struct{}
}

// NewSignal creates a signal holding initial at version zero.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		value:   initial,
		changed: make(chan struct{}),
	}
}

// Set publishes v as the latest value and wakes all waiters.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.version++
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()
}

// Latest returns the current value and its version. The version increases
// on every Set; comparing versions detects missed updates.
func (s *Signal[T]) Latest() (T, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.version
}

// Changed returns a channel closed by the next Set. Callers re-arm by
// calling Changed again after it fires.
func (s *Signal[T]) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}
