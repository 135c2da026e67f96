package session

import (
	"context"
	"sync"
	"time"

	"github.com/stockdeck/stockdeck/internal/localstore"
)

// Scope is one storage scope for session values. The store reads the session
// scope first and falls back to the durable scope; writes go to whichever
// scope the login persistence chose.
type Scope interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// durableScope adapts the local store to the Scope interface. Values survive
// daemon restarts ("remember me").
type durableScope struct {
	store *localstore.Store
}

// NewDurableScope returns a Scope backed by the local store.
func NewDurableScope(store *localstore.Store) Scope {
	return &durableScope{store: store}
}

func (s *durableScope) Get(_ context.Context, key string) (string, bool, error) {
	return s.store.Get(key)
}

func (s *durableScope) Set(_ context.Context, key, value string) error {
	return s.store.Set(key, value)
}

func (s *durableScope) Delete(_ context.Context, keys ...string) error {
	return s.store.Delete(keys...)
}

// memoryScope holds session values in process memory with a per-key TTL.
// It is the default session scope when Redis is not configured.
type memoryScope struct {
	mu     sync.RWMutex
	values map[string]memoryEntry
	ttl    time.Duration
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryScope returns an in-memory Scope. A zero ttl means entries never
// expire.
func NewMemoryScope(ttl time.Duration) Scope {
	return &memoryScope{values: make(map[string]memoryEntry), ttl: ttl}
}

func (s *memoryScope) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.values, key)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *memoryScope) Set(_ context.Context, key, value string) error {
	var expires time.Time
	if s.ttl > 0 {
		expires = time.Now().Add(s.ttl)
	}
	s.mu.Lock()
	s.values[key] = memoryEntry{value: value, expiresAt: expires}
	s.mu.Unlock()
	return nil
}

func (s *memoryScope) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.values, key)
	}
	s.mu.Unlock()
	return nil
}
