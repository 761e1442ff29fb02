package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// RouteResponse is the JSON representation of a route table entry.
type RouteResponse struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	View         string `json:"view"`
	RequiresAuth bool   `json:"requires_auth"`
}

// NavigationRequest is the JSON body for the navigation decision endpoint.
// Source is optional.
type NavigationRequest struct {
	Target string `json:"target"`
	Source string `json:"source"`
}

// NavigationResponse is the JSON representation of a guard decision.
type NavigationResponse struct {
	Action   string `json:"action"`
	Location string `json:"location"`
}

func toRouteResponse(r model.Route) RouteResponse {
	return RouteResponse{
		Path:         r.Path,
		Name:         r.Name,
		View:         r.View,
		RequiresAuth: r.RequiresAuth,
	}
}

func toNavigationResponse(d model.NavigationDecision) NavigationResponse {
	return NavigationResponse{
		Action:   string(d.Action),
		Location: d.Location,
	}
}
