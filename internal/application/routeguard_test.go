package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/synthpanel/internal/application"
	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

const testClient = "client-1"

func newGuard(t *testing.T, store *mockTokenStore) (*application.RouteGuard, *application.RouteTable) {
	t.Helper()

	table, err := application.NewRouteTable(application.DefaultRoutes())
	require.NoError(t, err)

	return application.NewRouteGuard(table, store, discardLogger()), table
}

func navigate(t *testing.T, table *application.RouteTable, target, source string) model.NavigationRequest {
	t.Helper()

	to, ok := table.Lookup(target)
	require.True(t, ok, "unknown target %s", target)
	from, _ := table.Lookup(source)

	return model.NavigationRequest{Target: to, Source: from, ClientID: testClient}
}

func TestRouteGuard_ProtectedRoutes(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantAction model.NavigationAction
	}{
		{name: "absent token redirects", token: "", wantAction: model.NavigationRedirect},
		{name: "stored token proceeds", token: "abc123", wantAction: model.NavigationProceed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockTokenStore()
			if tt.token != "" {
				require.NoError(t, store.Set(context.Background(), testClient, model.TokenKey, tt.token))
			}
			guard, table := newGuard(t, store)

			for _, route := range table.Routes() {
				if !route.RequiresAuth {
					continue
				}

				decision := guard.Decide(context.Background(), navigate(t, table, route.Path, "/login"))

				assert.Equal(t, tt.wantAction, decision.Action, route.Path)
				if tt.wantAction == model.NavigationRedirect {
					assert.Equal(t, "/login", decision.Location)
				} else {
					assert.Equal(t, route.Path, decision.Location)
				}
			}
		})
	}
}

func TestRouteGuard_PublicRoutesIgnoreToken(t *testing.T) {
	for _, token := range []string{"", "abc123"} {
		store := newMockTokenStore()
		if token != "" {
			require.NoError(t, store.Set(context.Background(), testClient, model.TokenKey, token))
		}
		guard, table := newGuard(t, store)

		decision := guard.Decide(context.Background(), navigate(t, table, "/login", "/"))

		assert.True(t, decision.Proceed())
		assert.Equal(t, "/login", decision.Location)
		assert.Zero(t, store.gets, "public routes must not consult the token store")
	}
}

func TestRouteGuard_Scenarios(t *testing.T) {
	t.Run("no token, dashboard redirects to login", func(t *testing.T) {
		guard, table := newGuard(t, newMockTokenStore())

		decision := guard.Decide(context.Background(), navigate(t, table, "/", ""))

		assert.Equal(t, model.NavigationDecision{Action: model.NavigationRedirect, Location: "/login"}, decision)
	})

	t.Run("token abc123, api settings proceeds", func(t *testing.T) {
		store := newMockTokenStore()
		require.NoError(t, store.Set(context.Background(), testClient, model.TokenKey, "abc123"))
		guard, table := newGuard(t, store)

		decision := guard.Decide(context.Background(), navigate(t, table, "/api-settings", "/"))

		assert.Equal(t, model.NavigationDecision{Action: model.NavigationProceed, Location: "/api-settings"}, decision)
	})

	t.Run("no token, login proceeds without a loop", func(t *testing.T) {
		guard, table := newGuard(t, newMockTokenStore())

		decision := guard.Decide(context.Background(), navigate(t, table, "/login", "/"))

		assert.Equal(t, model.NavigationDecision{Action: model.NavigationProceed, Location: "/login"}, decision)
	})
}

func TestRouteGuard_TokenIsPerClient(t *testing.T) {
	store := newMockTokenStore()
	require.NoError(t, store.Set(context.Background(), "someone-else", model.TokenKey, "abc123"))
	guard, table := newGuard(t, store)

	decision := guard.Decide(context.Background(), navigate(t, table, "/", "/login"))

	assert.False(t, decision.Proceed())
}

func TestRouteGuard_MissingClientIDRedirects(t *testing.T) {
	store := newMockTokenStore()
	guard, table := newGuard(t, store)

	nav := navigate(t, table, "/", "/login")
	nav.ClientID = ""

	decision := guard.Decide(context.Background(), nav)

	assert.False(t, decision.Proceed())
	assert.Zero(t, store.gets)
}

func TestRouteGuard_StoreErrorFailsClosed(t *testing.T) {
	store := newMockTokenStore()
	store.getErr = errStoreDown
	guard, table := newGuard(t, store)

	decision := guard.Decide(context.Background(), navigate(t, table, "/api-settings", "/"))

	assert.Equal(t, model.NavigationRedirect, decision.Action)
	assert.Equal(t, "/login", decision.Location)
}

func TestRouteGuard_DoesNotWriteToken(t *testing.T) {
	store := newMockTokenStore()
	require.NoError(t, store.Set(context.Background(), testClient, model.TokenKey, "abc123"))
	guard, table := newGuard(t, store)

	_ = guard.Decide(context.Background(), navigate(t, table, "/", "/login"))

	assert.Equal(t, map[tokenKey]string{{testClient, model.TokenKey}: "abc123"}, store.values)
}
