package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process BlobStore used by tests and local runs
// without minio.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Store(_ context.Context, data []byte, _ string) (string, error) {
	key := "posts/" + uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	return key, nil
}

func (s *MemoryStore) URLFor(key string) string {
	return "memory://" + key
}

// Get returns a stored blob; tests use it to assert round-trips.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	return b, ok
}
