package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

func TestTokenRepo_SetAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepo(db, testKey)
	ctx := context.Background()

	err := repo.Set(ctx, "client-1", "token", "abc123")
	require.NoError(t, err)

	val, err := repo.Get(ctx, "client-1", "token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", val)
}

func TestTokenRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepo(db, testKey)

	val, err := repo.Get(context.Background(), "client-1", "token")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestTokenRepo_ScopedByClient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepo(db, testKey)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "client-1", "token", "abc123"))

	val, err := repo.Get(ctx, "client-2", "token")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestTokenRepo_UpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepo(db, testKey)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "client-1", "token", "old-value"))
	require.NoError(t, repo.Set(ctx, "client-1", "token", "new-value"))

	val, err := repo.Get(ctx, "client-1", "token")
	require.NoError(t, err)
	assert.Equal(t, "new-value", val)
}

func TestTokenRepo_StoresCiphertext(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepo(db, testKey)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "client-1", "token", "abc123"))

	var raw string
	err := db.Reader.QueryRowContext(ctx,
		`SELECT value FROM client_storage WHERE client_id = ? AND key = ?`, "client-1", "token",
	).Scan(&raw)
	require.NoError(t, err)
	assert.NotEqual(t, "abc123", raw)
	assert.NotContains(t, raw, "abc123")
}

func TestTokenRepo_WrongKeyFailsToDecrypt(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewTokenRepo(db, testKey).Set(ctx, "client-1", "token", "abc123"))

	other := NewTokenRepo(db, []byte("fedcba9876543210fedcba9876543210"))
	_, err := other.Get(ctx, "client-1", "token")
	assert.Error(t, err)
}

func TestTokenRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepo(db, testKey)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "client-1", "token", "abc123"))
	require.NoError(t, repo.Delete(ctx, "client-1", "token"))

	val, err := repo.Get(ctx, "client-1", "token")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestTokenRepo_DeleteNonexistent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepo(db, testKey)

	err := repo.Delete(context.Background(), "client-1", "nonexistent")
	assert.NoError(t, err, "deleting a missing key should not error")
}

func TestTokenRepo_NoKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepo(db, nil)
	ctx := context.Background()

	err := repo.Set(ctx, "client-1", "token", "abc123")
	require.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)

	_, err = repo.Get(ctx, "client-1", "token")
	require.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	version, err := RunMigrations(db.Writer)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestRunMigrations_CreatesClientStorage(t *testing.T) {
	db := setupTestDB(t)

	var name string
	err := db.Reader.QueryRowContext(context.Background(),
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'client_storage'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "client_storage", name)
}
