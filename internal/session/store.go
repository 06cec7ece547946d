// Package session owns the bearer token of the signed-in user.
//
// A Store is constructed once per process. The token is the only durable
// state; the user id is always derived from it on demand.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Store holds the current bearer token and mirrors it to durable storage
type Store struct {
	mu      sync.RWMutex
	token   string
	storage TokenStorage
}

// NewStore restores a previously saved token from storage. A nil storage,
// or one that fails to load, leaves the store in memory-only mode.
func NewStore(ctx context.Context, storage TokenStorage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Store{storage: storage}

	token, err := storage.Load(ctx)
	switch {
	case err == nil:
		s.token = token
	case errors.Is(err, ErrNoToken):
	default:
		log.Printf("warning: could not restore session from %s storage: %v", storage.Name(), err)
	}
	return s
}

// SetToken stores a new token in memory and in durable storage. A storage
// failure is logged; the in-memory session still becomes authenticated.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.storage.Save(ctx, token); err != nil {
		log.Printf("warning: session kept in memory only: %v", err)
	}
}

// Token returns the current bearer token, or "" when signed out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is present
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// UserID decodes the user id from the current token
func (s *Store) UserID() (int64, bool) {
	token := s.Token()
	if token == "" {
		return 0, false
	}
	return UserIDFromToken(token)
}

// Logout clears the token from memory and durable storage
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		log.Printf("warning: failed to clear stored session: %v", err)
	}
}

// Backend names the durable storage in use
func (s *Store) Backend() string {
	return s.storage.Name()
}

// Close releases the durable storage
func (s *Store) Close() error {
	return s.storage.Close()
}
