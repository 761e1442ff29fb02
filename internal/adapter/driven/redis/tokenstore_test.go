package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, ttl time.Duration) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)

	client, err := NewClient(context.Background(), srv.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewTokenStore(client, ttl), srv
}

func TestTokenStore_SetAndGet(t *testing.T) {
	store, srv := setupTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "client-1", "token", "abc123"))

	val, err := store.Get(ctx, "client-1", "token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", val)

	raw, err := srv.Get("synthpanel:storage:client-1:token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", raw)
	assert.Zero(t, srv.TTL("synthpanel:storage:client-1:token"))
}

func TestTokenStore_GetMissing(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	val, err := store.Get(context.Background(), "client-1", "token")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestTokenStore_Delete(t *testing.T) {
	store, srv := setupTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "client-1", "token", "abc123"))
	require.NoError(t, store.Delete(ctx, "client-1", "token"))
	require.NoError(t, store.Delete(ctx, "client-1", "token"))

	assert.False(t, srv.Exists("synthpanel:storage:client-1:token"))
}

func TestTokenStore_TTL(t *testing.T) {
	store, srv := setupTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "client-1", "token", "abc123"))
	assert.Equal(t, time.Hour, srv.TTL("synthpanel:storage:client-1:token"))

	srv.FastForward(2 * time.Hour)

	val, err := store.Get(ctx, "client-1", "token")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestTokenStore_ServerDown(t *testing.T) {
	store, srv := setupTestStore(t, 0)
	srv.Close()

	_, err := store.Get(context.Background(), "client-1", "token")
	assert.Error(t, err)
}

func TestNewClient_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	client, err := NewClient(context.Background(), addr, "")
	assert.Nil(t, client)
	assert.Error(t, err)
}
