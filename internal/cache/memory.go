package cache

import (
	"fmt"
	"sync"

	"github.com/BerryBytes/rolectl/models"
)

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.CachedSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]models.CachedSession{}}
}

func (s *MemoryStore) Get(key string) (*models.CachedSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrCacheMiss)
	}
	return &session, nil
}

func (s *MemoryStore) Set(key string, session *models.CachedSession) error {
	if session == nil {
		return fmt.Errorf("set %q: nil session", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = *session
	return nil
}

func (s *MemoryStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[key]
	return ok
}
