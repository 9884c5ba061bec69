package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 测试与单机开发用，无过期清扫协程，只做惰性过期
type MemoryStore struct {
	mu  sync.RWMutex
	m   map[string]entry
	ttl time.Duration
}

type entry struct {
	userID uint
	exp    time.Time
}

func NewMemory(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{m: make(map[string]entry), ttl: ttl}
}

func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	tok := newToken()
	s.mu.Lock()
	s.m[tok] = entry{userID: userID, exp: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return tok, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (uint, error) {
	s.mu.RLock()
	e, ok := s.m[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.exp) {
		return 0, ErrNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.m, token)
	s.mu.Unlock()
	return nil
}
