package credentials

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// MemoryStore keeps the session in process memory only.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.sess == nil {
		return nil, nil
	}
	cp := *m.sess
	return &cp, nil
}

func (m *MemoryStore) Set(_ context.Context, token string, user models.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	m.sess = &models.Session{Token: token, User: user}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.sess = nil
	m.mu.Unlock()
	return nil
}
