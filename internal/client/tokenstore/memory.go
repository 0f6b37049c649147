package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the session in process memory only.
type MemoryStore struct {
	mu      sync.RWMutex
	token   string
	profile []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Profile(context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil, nil
	}
	return append([]byte(nil), m.profile...), nil
}

func (m *MemoryStore) Save(_ context.Context, token string, profile []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	if profile == nil {
		m.profile = nil
	} else {
		m.profile = append([]byte(nil), profile...)
	}
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.profile = "", nil
	return nil
}
