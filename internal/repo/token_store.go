package repo

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTokenNotFound 令牌不存在、已用过或已过期
var ErrTokenNotFound = errors.New("repo: remember-me token not found")

// MemoryTokenStore 单进程部署用，重启即全部失效
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
}

type memoryToken struct {
	userID    uint64
	expiresAt time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]memoryToken)}
}

func (s *MemoryTokenStore) Save(_ context.Context, token string, userID uint64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryToken{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Consume 读即删，第二次取同一令牌必然 ErrTokenNotFound
func (s *MemoryTokenStore) Consume(_ context.Context, token string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok {
		return 0, ErrTokenNotFound
	}
	delete(s.tokens, token)
	if time.Now().After(t.expiresAt) {
		return 0, ErrTokenNotFound
	}
	return t.userID, nil
}
