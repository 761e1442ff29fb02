// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/synthpanel/internal/adapter/driving/clientid"
	"github.com/ericfisherdev/synthpanel/internal/application"
	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// maxBodyBytes bounds request bodies accepted by the API.
const maxBodyBytes = 1 << 16

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	routes            *application.RouteTable
	guard             *application.RouteGuard
	trustClientHeader bool
	logger            *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. When
// trustClientHeader is false, navigations are evaluated for the cookie client
// only and X-Client-ID is ignored, so callers cannot query other clients.
func NewHandler(routes *application.RouteTable, guard *application.RouteGuard, trustClientHeader bool, logger *slog.Logger) *Handler {
	return &Handler{
		routes:            routes,
		guard:             guard,
		trustClientHeader: trustClientHeader,
		logger:            logger,
	}
}

// RegisterAPIRoutes registers all JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/routes", h.ListRoutes)
	mux.HandleFunc("POST /api/v1/navigations", h.Navigate)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListRoutes returns the route table in declaration order.
func (h *Handler) ListRoutes(w http.ResponseWriter, _ *http.Request) {
	routes := h.routes.Routes()

	resp := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		resp = append(resp, toRouteResponse(r))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Navigate evaluates the route guard for the calling client and reports
// whether a navigation from source to target would proceed or be redirected.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Target == "" {
		writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	target, ok := h.routes.Lookup(req.Target)
	if !ok {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}
	source, _ := h.routes.Lookup(req.Source)

	decision := h.guard.Decide(r.Context(), model.NavigationRequest{
		Target:   target,
		Source:   source,
		ClientID: clientid.FromRequest(r, h.trustClientHeader),
	})

	writeJSON(w, http.StatusOK, toNavigationResponse(decision))
}
