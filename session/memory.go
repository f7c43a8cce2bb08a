package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data    Data
	expires time.Time
}

// MemoryStore holds sessions in process memory with the same TTL semantics
// as the Redis store. Used by tests and redis-less development.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry

	// TTL defaults to the package TTL; tests shorten it.
	TTL time.Duration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		TTL:      TTL,
	}
}

func (s *MemoryStore) Save(ctx context.Context, id string, data Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{data: data, expires: time.Now().Add(s.TTL)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return Data{}, ErrNotFound
	}
	if time.Now().After(entry.expires) {
		delete(s.sessions, id)
		return Data{}, ErrNotFound
	}
	return entry.data, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
