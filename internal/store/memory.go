// internal/store/memory.go
//
// In-memory session storage for spelling sessions, challenges and duels.
//
// Characteristics:
//   - Stores values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing IDs.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get and Delete for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for live sessions.
type Store[T any] interface {
	// Save persists or replaces the value under id.
	Save(ctx context.Context, id string, v T) error

	// Get retrieves the value stored under id.
	Get(ctx context.Context, id string) (T, error)

	// Delete removes id and returns the removed value.
	Delete(ctx context.Context, id string) (T, error)

	// Len reports how many values are stored.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory[T any] struct {
	mu    sync.RWMutex // guards items
	items map[string]T
}

// NewMemory constructs a new in-memory Store.
func NewMemory[T any]() Store[T] {
	return &memory[T]{items: make(map[string]T)}
}

func (m *memory[T]) Save(ctx context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = v
	return nil
}

func (m *memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	var zero T
	return zero, ErrNotFound
}

func (m *memory[T]) Delete(ctx context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	delete(m.items, id)
	return v, nil
}

func (m *memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
