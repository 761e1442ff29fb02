package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// ErrInvalidCredentials indicates the upstream rejected the username/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator defines the driven port for the external login flow that
// exchanges user credentials for an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (model.AccessToken, error)
}
