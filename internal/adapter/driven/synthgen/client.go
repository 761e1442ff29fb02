// Package synthgen implements the Authenticator port against the SynthGen
// API's OAuth2 password endpoint.
package synthgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Authenticator = (*Client)(nil)

// maxErrorBody caps how much of an unexpected response is echoed into errors.
const maxErrorBody = 512

// Client talks to the upstream token endpoint.
type Client struct {
	http     *http.Client
	tokenURL string
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string) (*Client, error) {
	return NewClientWithHTTPClient(&http.Client{Timeout: 10 * time.Second}, baseURL)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parsing base URL: unsupported scheme %q", u.Scheme)
	}

	return &Client{
		http:     httpClient,
		tokenURL: u.JoinPath("token").String(),
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Authenticate posts username and password as an OAuth2 password grant form
// and returns the issued token. A 401 maps to driven.ErrInvalidCredentials.
func (c *Client) Authenticate(ctx context.Context, username, password string) (model.AccessToken, error) {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return model.AccessToken{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.AccessToken{}, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return model.AccessToken{}, driven.ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return model.AccessToken{}, fmt.Errorf("token request: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return model.AccessToken{}, fmt.Errorf("decode token response: %w", err)
	}

	return model.AccessToken{Value: tr.AccessToken, Type: tr.TokenType}, nil
}
