package driven

import (
	"context"
	"errors"
)

// ErrEncryptionKeyNotSet is returned by TokenStore operations when
// SYNTHPANEL_SECRET_KEY has not been configured for an encrypting adapter.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set SYNTHPANEL_SECRET_KEY")

// TokenReader is the read-only view of per-client storage. It is all the
// route guard is allowed to see.
type TokenReader interface {
	// Get returns the value stored under key for the client.
	// Returns ("", nil) if nothing is stored.
	Get(ctx context.Context, clientID, key string) (string, error)
}

// TokenStore defines the driven port for per-client key/value storage, the
// server-side counterpart of a browser's local storage.
type TokenStore interface {
	TokenReader

	// Set stores or replaces the value under key for the client.
	Set(ctx context.Context, clientID, key, value string) error

	// Delete removes the value under key for the client. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, clientID, key string) error
}
