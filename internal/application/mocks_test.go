package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// --- Mock implementations ---

type tokenKey struct {
	clientID string
	key      string
}

type mockTokenStore struct {
	values    map[tokenKey]string
	getErr    error
	setErr    error
	deleteErr error
	gets      int
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{values: make(map[tokenKey]string)}
}

func (m *mockTokenStore) Get(_ context.Context, clientID, key string) (string, error) {
	m.gets++
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.values[tokenKey{clientID, key}], nil
}

func (m *mockTokenStore) Set(_ context.Context, clientID, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[tokenKey{clientID, key}] = value
	return nil
}

func (m *mockTokenStore) Delete(_ context.Context, clientID, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, tokenKey{clientID, key})
	return nil
}

type mockAuthenticator struct {
	token    model.AccessToken
	err      error
	username string
	password string
}

func (m *mockAuthenticator) Authenticate(_ context.Context, username, password string) (model.AccessToken, error) {
	m.username = username
	m.password = password
	return m.token, m.err
}

var errStoreDown = errors.New("store unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
