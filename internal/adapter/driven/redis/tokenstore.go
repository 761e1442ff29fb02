// Package redis implements the driven storage ports on a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenStore = (*TokenStore)(nil)

const keyPrefix = "synthpanel:storage:"

// NewClient connects to the Redis server at addr and verifies it with a ping.
func NewClient(ctx context.Context, addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return client, nil
}

// TokenStore keeps per-client values as plain Redis string keys.
type TokenStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore. A positive ttl makes Redis evict values
// that have not been rewritten within it; zero keeps them until deleted.
func NewTokenStore(client *goredis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func storageKey(clientID, key string) string {
	return keyPrefix + clientID + ":" + key
}

// Get returns the value under key for the client, or "" if absent.
func (s *TokenStore) Get(ctx context.Context, clientID, key string) (string, error) {
	val, err := s.client.Get(ctx, storageKey(clientID, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %q for client %q: %w", key, clientID, err)
	}
	return val, nil
}

// Set stores or replaces the value under key for the client.
func (s *TokenStore) Set(ctx context.Context, clientID, key, value string) error {
	if err := s.client.Set(ctx, storageKey(clientID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("set %q for client %q: %w", key, clientID, err)
	}
	return nil
}

// Delete removes the value under key for the client.
func (s *TokenStore) Delete(ctx context.Context, clientID, key string) error {
	if err := s.client.Del(ctx, storageKey(clientID, key)).Err(); err != nil {
		return fmt.Errorf("delete %q for client %q: %w", key, clientID, err)
	}
	return nil
}
