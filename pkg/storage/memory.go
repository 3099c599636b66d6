package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps values in a map. Writes can be made to fail for testing error paths.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	failWith error
	writes   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(value), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.values[key] = slices.Clone(value)
	s.writes++
	return nil
}

// FailWrites makes every following Set return err. A nil err restores normal behaviour.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Writes counts successful Set calls.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Put stores raw bytes bypassing failure injection, e.g. to plant corrupt data.
func (s *MemoryStore) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
}
