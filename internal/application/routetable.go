package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// LoginRouteName is the name of the route unauthenticated navigations are
// redirected to.
const LoginRouteName = "login"

// ErrInvalidRouteTable is returned by NewRouteTable when the route
// definitions are inconsistent.
var ErrInvalidRouteTable = errors.New("invalid route table")

// DefaultRoutes returns the shipped route table in declaration order.
func DefaultRoutes() []model.Route {
	return []model.Route{
		{Path: "/login", Name: LoginRouteName, View: "login"},
		{Path: "/", Name: "dashboard", View: "dashboard", RequiresAuth: true},
		{Path: "/api-settings", Name: "api-settings", View: "api-settings", RequiresAuth: true},
	}
}

// RouteTable is an immutable, validated set of routes indexed by path and name.
type RouteTable struct {
	routes []model.Route
	byPath map[string]model.Route
	byName map[string]model.Route
}

// NewRouteTable validates routes and builds a RouteTable. Every route needs a
// path beginning with "/" and a name; paths and names must be unique; and a
// public route named "login" must exist so redirects always land somewhere
// reachable.
func NewRouteTable(routes []model.Route) (*RouteTable, error) {
	t := &RouteTable{
		routes: make([]model.Route, 0, len(routes)),
		byPath: make(map[string]model.Route, len(routes)),
		byName: make(map[string]model.Route, len(routes)),
	}

	for _, r := range routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("%w: route %q path %q must start with /", ErrInvalidRouteTable, r.Name, r.Path)
		}
		if r.Name == "" {
			return nil, fmt.Errorf("%w: route at %q has no name", ErrInvalidRouteTable, r.Path)
		}
		if _, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrInvalidRouteTable, r.Path)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidRouteTable, r.Name)
		}

		t.routes = append(t.routes, r)
		t.byPath[r.Path] = r
		t.byName[r.Name] = r
	}

	login, ok := t.byName[LoginRouteName]
	if !ok {
		return nil, fmt.Errorf("%w: no route named %q", ErrInvalidRouteTable, LoginRouteName)
	}
	if login.RequiresAuth {
		return nil, fmt.Errorf("%w: route %q must not require auth", ErrInvalidRouteTable, LoginRouteName)
	}

	return t, nil
}

// Routes returns a copy of the routes in declaration order.
func (t *RouteTable) Routes() []model.Route {
	out := make([]model.Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup returns the route registered at path.
func (t *RouteTable) Lookup(path string) (model.Route, bool) {
	r, ok := t.byPath[path]
	return r, ok
}

// ByName returns the route with the given name.
func (t *RouteTable) ByName(name string) (model.Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// LoginRoute returns the route unauthenticated navigations are sent to.
func (t *RouteTable) LoginRoute() model.Route {
	return t.byName[LoginRouteName]
}
