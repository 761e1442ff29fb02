// Package memory implements the driven storage ports in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenStore = (*TokenStore)(nil)

type entryKey struct {
	clientID string
	key      string
}

// TokenStore keeps per-client values in a map. Contents are lost on restart.
type TokenStore struct {
	mu      sync.RWMutex
	entries map[entryKey]string
}

// NewTokenStore creates an empty TokenStore.
func NewTokenStore() *TokenStore {
	return &TokenStore{entries: make(map[entryKey]string)}
}

// Get returns the value under key for the client, or "" if absent.
func (s *TokenStore) Get(_ context.Context, clientID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[entryKey{clientID, key}], nil
}

// Set stores or replaces the value under key for the client.
func (s *TokenStore) Set(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entryKey{clientID, key}] = value
	return nil
}

// Delete removes the value under key for the client.
func (s *TokenStore) Delete(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, entryKey{clientID, key})
	return nil
}
