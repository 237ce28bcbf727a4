package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	uuid      string
	expiresAt time.Time
}

// MemoryStore 进程内会话存储，重启即失效
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(_ context.Context, sid, uuid string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = memoryEntry{uuid: uuid, expiresAt: time.Now().Add(ttl)}
	// 顺手清一遍过期项，省一个后台 goroutine
	for k, e := range s.entries {
		if time.Now().After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return "", ErrNotFound
	}
	return e.uuid, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.entries, sid)
	s.mu.Unlock()
	return nil
}
