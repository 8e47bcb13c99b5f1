package session

import (
	"context"
	"sync"

	"vetgate/pkg/platform/sentinel"
)

// Store persists the current session across restarts. A single slot is
// enough: the gateway serves one signed-in user at a time, mirroring the
// client it fronts.
type Store interface {
	Save(ctx context.Context, session Session) error
	Load(ctx context.Context) (Session, error)
	Clear(ctx context.Context) error
}

// In-memory store keeps the default deployment dependency-free and testable.
type InMemoryStore struct {
	mu      sync.RWMutex
	current *Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &session
	return nil
}

func (s *InMemoryStore) Load(_ context.Context) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, sentinel.ErrNotFound
	}
	return *s.current, nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return nil
}
