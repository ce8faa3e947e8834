package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jrjohn/streamlens-go/internal/cache"
)

// MockCacheStore is an in-memory implementation of cache.Store.
// TTLs are recorded but never enforced; tests expire entries by
// calling Delete.
type MockCacheStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	locks map[string]bool

	GetErr error
	SetErr error

	// Hits and Misses count GetJSON outcomes.
	Hits   int
	Misses int
}

var _ cache.Store = (*MockCacheStore)(nil)

func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		data:  make(map[string][]byte),
		locks: make(map[string]bool),
	}
}

func (s *MockCacheStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if s.GetErr != nil {
		return false, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok {
		s.Misses++
		return false, nil
	}
	s.Hits++
	return true, json.Unmarshal(raw, dest)
}

func (s *MockCacheStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

func (s *MockCacheStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *MockCacheStore) AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[name] {
		return false, nil
	}
	s.locks[name] = true
	return true, nil
}

func (s *MockCacheStore) ReleaseLock(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, name)
	return nil
}
