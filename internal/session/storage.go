package session

import (
	"context"
	"errors"
	"sync"
)

// TokenKey is the single durable key holding the bearer token
const TokenKey = "auth_token"

// ErrNoToken is returned by a TokenStorage holding no token
var ErrNoToken = errors.New("no token stored")

// TokenStorage persists the bearer token across restarts
type TokenStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Close() error
	Name() string
}

// MemoryStorage keeps the token for the lifetime of the process only
type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

var _ TokenStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *MemoryStorage) Save(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Clear(context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Close() error { return nil }

func (m *MemoryStorage) Name() string { return "memory" }
