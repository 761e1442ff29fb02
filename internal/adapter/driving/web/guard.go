package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ericfisherdev/synthpanel/internal/adapter/driving/clientid"
	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// unexported, collision-proof context key
type clientIDContextKey struct{}

func clientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDContextKey{}).(string)
	return id
}

// guarded runs the route guard before next. A redirect decision answers with
// 303 See Other to the decision's location; a proceed decision serves next
// with the client ID attached to the request context.
func (h *Handler) guarded(route model.Route, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientid.Ensure(w, r, h.cookieSecure)

		decision := h.guard.Decide(r.Context(), model.NavigationRequest{
			Target:   route,
			Source:   h.sourceRoute(r),
			ClientID: client,
		})
		if !decision.Proceed() {
			http.Redirect(w, r, decision.Location, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), clientIDContextKey{}, client)
		next(w, r.WithContext(ctx))
	})
}

// sourceRoute resolves the page the browser came from using the Referer
// header. Cross-origin and unknown referers yield the zero Route.
func (h *Handler) sourceRoute(r *http.Request) model.Route {
	ref := r.Referer()
	if ref == "" {
		return model.Route{}
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host != r.Host {
		return model.Route{}
	}

	route, _ := h.routes.Lookup(u.Path)
	return route
}
