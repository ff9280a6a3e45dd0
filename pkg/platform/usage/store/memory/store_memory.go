// Package memory keeps the most recent usage events in a bounded ring.
// It backs the admin recent-usage endpoint and is the default sink when
// no durable backend is configured.
package memory

import (
	"context"
	"sync"

	"tempus/pkg/platform/usage"
)

// InMemoryStore is a fixed-capacity ring of events. When full, the oldest
// event is overwritten.
type InMemoryStore struct {
	mu       sync.RWMutex
	events   []usage.Event
	head     int
	count    int
	capacity int
}

// NewInMemoryStore creates a ring holding up to capacity events.
func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = 1024
	}
	return &InMemoryStore{
		events:   make([]usage.Event, capacity),
		capacity: capacity,
	}
}

// Append records an event, evicting the oldest when the ring is full.
func (s *InMemoryStore) Append(_ context.Context, event usage.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[s.head] = event
	s.head = (s.head + 1) % s.capacity
	if s.count < s.capacity {
		s.count++
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]usage.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > s.count {
		limit = s.count
	}

	out := make([]usage.Event, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.head - i + s.capacity) % s.capacity
		out = append(out, s.events[idx])
	}
	return out, nil
}

// Clear empties the ring. For tests.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.head = 0
	s.count = 0
}
