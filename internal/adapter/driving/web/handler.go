// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/synthpanel/internal/adapter/driving/clientid"
	"github.com/ericfisherdev/synthpanel/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/synthpanel/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/synthpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/synthpanel/internal/application"
	"github.com/ericfisherdev/synthpanel/internal/domain/model"
	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	routes       *application.RouteTable
	guard        *application.RouteGuard
	sessions     *application.SessionService
	cookieSecure bool
	logger       *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	routes *application.RouteTable,
	guard *application.RouteGuard,
	sessions *application.SessionService,
	cookieSecure bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		routes:       routes,
		guard:        guard,
		sessions:     sessions,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// Login renders the sign-in form.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, vm.LoginViewModel{CSRFToken: csrfToken(w, r, h.cookieSecure)})
}

// SubmitLogin exchanges the posted credentials for a token, stores it for
// the client and sends the browser to the dashboard.
func (h *Handler) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	client := clientid.Ensure(w, r, h.cookieSecure)
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	page := vm.LoginViewModel{
		CSRFToken: csrfToken(w, r, h.cookieSecure),
		Username:  username,
	}

	if username == "" || password == "" {
		page.Error = "Email and password are required."
		h.renderLogin(w, r, http.StatusBadRequest, page)
		return
	}

	if err := h.sessions.Login(r.Context(), client, username, password); err != nil {
		if errors.Is(err, driven.ErrInvalidCredentials) {
			page.Error = "Incorrect email or password."
			h.renderLogin(w, r, http.StatusUnauthorized, page)
			return
		}
		h.logger.Error("login failed", "error", err)
		page.Error = "Sign-in is unavailable right now. Try again shortly."
		h.renderLogin(w, r, http.StatusBadGateway, page)
		return
	}

	http.Redirect(w, r, h.homePath(), http.StatusSeeOther)
}

// Logout forgets the client's token and returns it to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	if err := h.sessions.Logout(r.Context(), clientid.FromCookie(r)); err != nil {
		h.logger.Error("logout failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.routes.LoginRoute().Path, http.StatusSeeOther)
}

// Dashboard renders the dashboard page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	page := vm.PageViewModel{Heading: "Dashboard", HelpHTML: renderHelp(viewDashboard)}
	h.render(w, r, http.StatusOK, "Dashboard", csrfToken(w, r, h.cookieSecure), pages.Dashboard(page))
}

// APISettings renders the API settings page.
func (h *Handler) APISettings(w http.ResponseWriter, r *http.Request) {
	page := vm.PageViewModel{Heading: "API settings", HelpHTML: renderHelp(viewAPISettings)}
	h.render(w, r, http.StatusOK, "API settings", csrfToken(w, r, h.cookieSecure), pages.APISettings(page))
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, page vm.LoginViewModel) {
	page.HelpHTML = renderHelp(viewLogin)
	h.render(w, r, status, "Sign in", page.CSRFToken, pages.Login(page, h.routes.LoginRoute().Path))
}

// render wraps component in the layout and writes it with status. csrf must
// be the token the page's forms were rendered with.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title, csrf string, component templ.Component) {
	client := clientIDFromContext(r.Context())
	if client == "" {
		client = clientid.FromCookie(r)
	}

	layout := vm.LayoutViewModel{
		Title:     title,
		SignedIn:  h.sessions.HasToken(r.Context(), client),
		CSRFToken: csrf,
	}
	if layout.SignedIn {
		layout.Nav = h.navLinks(r.URL.Path)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := templates.Layout(layout, component).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "title", title, "error", err)
	}
}

// navLinks lists the protected routes for the header navigation.
func (h *Handler) navLinks(current string) []vm.NavLink {
	var links []vm.NavLink
	for _, route := range h.routes.Routes() {
		if !route.RequiresAuth {
			continue
		}
		links = append(links, vm.NavLink{
			Label:  navLabel(route),
			Path:   route.Path,
			Active: route.Path == current,
		})
	}
	return links
}

func navLabel(route model.Route) string {
	switch route.View {
	case viewDashboard:
		return "Dashboard"
	case viewAPISettings:
		return "API settings"
	default:
		return route.Name
	}
}

// homePath is where a successful login lands.
func (h *Handler) homePath() string {
	if r, ok := h.routes.ByName("dashboard"); ok {
		return r.Path
	}
	return "/"
}
