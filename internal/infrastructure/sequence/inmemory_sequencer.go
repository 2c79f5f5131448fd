package sequence

import (
	"context"
	"sync"
)

// InMemorySequencer implements Sequencer using a mutex-protected map.
// Suitable for single-instance deployments and testing; values are lost
// on restart.
type InMemorySequencer struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewInMemorySequencer creates a new in-memory sequencer
func NewInMemorySequencer() *InMemorySequencer {
	return &InMemorySequencer{
		counters: make(map[string]int64),
	}
}

// Next atomically increments and returns the counter for the series/period
func (s *InMemorySequencer) Next(ctx context.Context, series, period string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := series + ":" + period
	s.counters[key]++
	return s.counters[key], nil
}

// Current returns the last value handed out for the series/period, 0 if none
func (s *InMemorySequencer) Current(ctx context.Context, series, period string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counters[series+":"+period], nil
}

// Close releases nothing; present to satisfy Sequencer
func (s *InMemorySequencer) Close() error {
	return nil
}

var _ Sequencer = (*InMemorySequencer)(nil)
