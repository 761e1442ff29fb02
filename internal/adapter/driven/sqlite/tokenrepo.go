package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenStore = (*TokenRepo)(nil)

// TokenRepo is the SQLite implementation of the TokenStore port interface.
// Values are encrypted with AES-256-GCM before write and decrypted after read.
type TokenRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewTokenRepo creates a new TokenRepo. key must be 32 bytes for AES-256-GCM,
// or nil, in which case Get and Set return driven.ErrEncryptionKeyNotSet.
func NewTokenRepo(db *DB, key []byte) *TokenRepo {
	return &TokenRepo{db: db, key: key}
}

// Set stores or replaces the value under key for the client.
func (r *TokenRepo) Set(ctx context.Context, clientID, key, value string) error {
	encrypted, err := r.encrypt(value)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO client_storage (client_id, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`
	_, err = r.db.Writer.ExecContext(ctx, query, clientID, key, encrypted)
	if err != nil {
		return fmt.Errorf("set %q for client %q: %w", key, clientID, err)
	}
	return nil
}

// Get returns the plaintext value under key for the client.
// Returns ("", nil) if nothing is stored.
func (r *TokenRepo) Get(ctx context.Context, clientID, key string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT value FROM client_storage WHERE client_id = ? AND key = ?`
	var encrypted string
	err := r.db.Reader.QueryRowContext(ctx, query, clientID, key).Scan(&encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %q for client %q: %w", key, clientID, err)
	}

	plaintext, err := r.decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("decrypt %q for client %q: %w", key, clientID, err)
	}
	return plaintext, nil
}

// Delete removes the value under key for the client.
func (r *TokenRepo) Delete(ctx context.Context, clientID, key string) error {
	const query = `DELETE FROM client_storage WHERE client_id = ? AND key = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, clientID, key)
	if err != nil {
		return fmt.Errorf("delete %q for client %q: %w", key, clientID, err)
	}
	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded string
// containing the nonce (12 bytes) prepended to the ciphertext.
func (r *TokenRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	gcm, err := r.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *TokenRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := r.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

func (r *TokenRepo) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
