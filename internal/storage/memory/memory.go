// Package memory provides an in-process storage.Store. State is lost when
// the process exits; it backs tests and the ephemeral server mode.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nexiumfounders/subsplit/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store is a mutex-guarded map.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return slices.Clone(v), nil
}

// Put stores a copy of value under key.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
	return nil
}

// Delete removes keys.
func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
