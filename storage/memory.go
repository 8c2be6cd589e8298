package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	payloads    map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.payloads = make(map[string][]byte)
	return nil
}

func (s *MemoryStore) Put(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	s.payloads[key] = append([]byte(nil), payload...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.payloads[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.payloads, key)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.payloads))
	for key := range s.payloads {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payloads = make(map[string][]byte)
	return nil
}
