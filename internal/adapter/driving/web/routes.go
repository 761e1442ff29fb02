package web

import (
	"fmt"
	"io/fs"
	"net/http"
)

// View names understood by the web adapter.
const (
	viewLogin       = "login"
	viewDashboard   = "dashboard"
	viewAPISettings = "api-settings"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Every route in the route table is served through the route guard.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) error {
	// Static assets (embedded via go:embed).
	staticFS, err := fs.Sub(StaticFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	views := map[string]http.HandlerFunc{
		viewLogin:       h.Login,
		viewDashboard:   h.Dashboard,
		viewAPISettings: h.APISettings,
	}

	// Page routes.
	for _, route := range h.routes.Routes() {
		view, ok := views[route.View]
		if !ok {
			return fmt.Errorf("route %q: no view named %q", route.Name, route.View)
		}
		mux.Handle("GET "+pattern(route.Path), h.guarded(route, view))
	}

	mux.HandleFunc("POST "+pattern(h.routes.LoginRoute().Path), h.SubmitLogin)
	mux.HandleFunc("POST /logout", h.Logout)

	return nil
}

// pattern turns a route path into an exact-match ServeMux pattern.
func pattern(path string) string {
	if path == "/" {
		return "/{$}"
	}
	return path
}
