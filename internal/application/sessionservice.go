package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

// errEmptyToken is returned when the upstream accepts the credentials but
// hands back nothing to store.
var errEmptyToken = errors.New("upstream returned an empty access token")

// SessionService is the login flow: it obtains a token from the upstream and
// persists it for the client so the route guard can find it.
type SessionService struct {
	auth   driven.Authenticator
	tokens driven.TokenStore
	logger *slog.Logger
}

// NewSessionService creates a SessionService with the required dependencies.
func NewSessionService(auth driven.Authenticator, tokens driven.TokenStore, logger *slog.Logger) *SessionService {
	return &SessionService{
		auth:   auth,
		tokens: tokens,
		logger: logger,
	}
}

// Login exchanges username and password for a token and stores it under
// model.TokenKey for clientID. Rejected credentials wrap
// driven.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, clientID, username, password string) error {
	if clientID == "" {
		return errors.New("login: missing client id")
	}

	token, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if token.Value == "" {
		return fmt.Errorf("login: %w", errEmptyToken)
	}

	if err := s.tokens.Set(ctx, clientID, model.TokenKey, token.Value); err != nil {
		return fmt.Errorf("login: store token: %w", err)
	}

	s.logger.InfoContext(ctx, "client logged in", "client_id", clientID, "token_type", token.Type)
	return nil
}

// Logout removes the stored token for clientID.
func (s *SessionService) Logout(ctx context.Context, clientID string) error {
	if clientID == "" {
		return nil
	}

	if err := s.tokens.Delete(ctx, clientID, model.TokenKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.InfoContext(ctx, "client logged out", "client_id", clientID)
	return nil
}

// HasToken reports whether a token is stored for clientID. Lookup errors are
// reported as false.
func (s *SessionService) HasToken(ctx context.Context, clientID string) bool {
	if clientID == "" {
		return false
	}

	token, err := s.tokens.Get(ctx, clientID, model.TokenKey)
	return err == nil && token != ""
}
