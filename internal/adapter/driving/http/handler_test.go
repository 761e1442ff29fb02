package httphandler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/synthpanel/internal/adapter/driven/memory"
	"github.com/ericfisherdev/synthpanel/internal/adapter/driving/clientid"
	httphandler "github.com/ericfisherdev/synthpanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/synthpanel/internal/application"
	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// --- Test helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupMux creates the API mux over the default route table and the given store.
func setupMux(t *testing.T, store *memory.TokenStore) http.Handler {
	return setupMuxWithHeaderTrust(t, store, false)
}

func setupMuxWithHeaderTrust(t *testing.T, store *memory.TokenStore, trustHeader bool) http.Handler {
	t.Helper()

	table, err := application.NewRouteTable(application.DefaultRoutes())
	require.NoError(t, err)

	guard := application.NewRouteGuard(table, store, discardLogger())
	h := httphandler.NewHandler(table, guard, trustHeader, discardLogger())
	return httphandler.NewServeMux(h, discardLogger())
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	err := json.NewDecoder(rec.Body).Decode(v)
	require.NoError(t, err)
}

func postNavigation(mux http.Handler, body, client string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/navigations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if client != "" {
		req.AddCookie(&http.Cookie{Name: clientid.CookieName, Value: client})
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHealth(t *testing.T) {
	mux := setupMux(t, memory.NewTokenStore())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["time"])
}

func TestListRoutes(t *testing.T) {
	mux := setupMux(t, memory.NewTokenStore())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []httphandler.RouteResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, []httphandler.RouteResponse{
		{Path: "/login", Name: "login", View: "login", RequiresAuth: false},
		{Path: "/", Name: "dashboard", View: "dashboard", RequiresAuth: true},
		{Path: "/api-settings", Name: "api-settings", View: "api-settings", RequiresAuth: true},
	}, resp)
}

func TestNavigate(t *testing.T) {
	withToken := uuid.NewString()
	withoutToken := uuid.NewString()

	store := memory.NewTokenStore()
	require.NoError(t, store.Set(context.Background(), withToken, model.TokenKey, "abc123"))

	tests := []struct {
		name         string
		body         string
		client       string
		wantStatus   int
		wantAction   string
		wantLocation string
	}{
		{
			name:         "no token, dashboard redirects",
			body:         `{"target":"/","source":"/login"}`,
			client:       withoutToken,
			wantStatus:   http.StatusOK,
			wantAction:   "redirect",
			wantLocation: "/login",
		},
		{
			name:         "no cookie at all redirects",
			body:         `{"target":"/api-settings"}`,
			wantStatus:   http.StatusOK,
			wantAction:   "redirect",
			wantLocation: "/login",
		},
		{
			name:         "token, api settings proceeds",
			body:         `{"target":"/api-settings","source":"/"}`,
			client:       withToken,
			wantStatus:   http.StatusOK,
			wantAction:   "proceed",
			wantLocation: "/api-settings",
		},
		{
			name:         "no token, login proceeds",
			body:         `{"target":"/login","source":"/"}`,
			client:       withoutToken,
			wantStatus:   http.StatusOK,
			wantAction:   "proceed",
			wantLocation: "/login",
		},
		{
			name:       "unknown target",
			body:       `{"target":"/admin"}`,
			client:     withToken,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing target",
			body:       `{"source":"/"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"target":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	mux := setupMux(t, store)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postNavigation(mux, tt.body, tt.client)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				var resp map[string]string
				decodeJSON(t, rec, &resp)
				assert.NotEmpty(t, resp["error"])
				return
			}

			var resp httphandler.NavigationResponse
			decodeJSON(t, rec, &resp)
			assert.Equal(t, tt.wantAction, resp.Action)
			assert.Equal(t, tt.wantLocation, resp.Location)
		})
	}
}

func TestNavigate_ClientHeader(t *testing.T) {
	client := uuid.NewString()
	store := memory.NewTokenStore()
	require.NoError(t, store.Set(context.Background(), client, model.TokenKey, "abc123"))

	navigateAs := func(mux http.Handler) httphandler.NavigationResponse {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/navigations", strings.NewReader(`{"target":"/"}`))
		req.Header.Set(clientid.HeaderName, client)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		var resp httphandler.NavigationResponse
		decodeJSON(t, rec, &resp)
		return resp
	}

	t.Run("trusted", func(t *testing.T) {
		resp := navigateAs(setupMuxWithHeaderTrust(t, store, true))
		assert.Equal(t, "proceed", resp.Action)
	})

	t.Run("untrusted header cannot reveal another client's token", func(t *testing.T) {
		resp := navigateAs(setupMuxWithHeaderTrust(t, store, false))
		assert.Equal(t, "redirect", resp.Action)
		assert.Equal(t, "/login", resp.Location)
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := httphandler.ApplyMiddleware(panicky, discardLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "internal server error", resp["error"])
}
