package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/synthpanel/internal/domain/model"
	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

// RouteGuard decides whether a navigation may proceed. It only checks that a
// token is present for the client: expiry, signature and server-side
// revalidation are not its concern.
type RouteGuard struct {
	tokens    driven.TokenReader
	loginPath string
	logger    *slog.Logger
}

// NewRouteGuard creates a RouteGuard that reads tokens from tokens and
// redirects to the login route of table.
func NewRouteGuard(table *RouteTable, tokens driven.TokenReader, logger *slog.Logger) *RouteGuard {
	return &RouteGuard{
		tokens:    tokens,
		loginPath: table.LoginRoute().Path,
		logger:    logger,
	}
}

// Decide evaluates a single navigation. Protected targets without a stored
// token are redirected to the login path; everything else proceeds unchanged.
// A failing token store counts as no token.
func (g *RouteGuard) Decide(ctx context.Context, nav model.NavigationRequest) model.NavigationDecision {
	decision := model.NavigationDecision{Action: model.NavigationProceed, Location: nav.Target.Path}

	if nav.Target.RequiresAuth && !g.hasToken(ctx, nav.ClientID) {
		decision = model.NavigationDecision{Action: model.NavigationRedirect, Location: g.loginPath}
	}

	source := "(none)"
	if !nav.Source.IsZero() {
		source = nav.Source.Name
	}

	g.logger.DebugContext(ctx, "navigation evaluated",
		"target", nav.Target.Path,
		"source", source,
		"action", decision.Action,
		"location", decision.Location,
	)

	return decision
}

func (g *RouteGuard) hasToken(ctx context.Context, clientID string) bool {
	if clientID == "" {
		return false
	}

	token, err := g.tokens.Get(ctx, clientID, model.TokenKey)
	if err != nil {
		g.logger.WarnContext(ctx, "token lookup failed, treating as absent", "error", err)
		return false
	}

	return token != ""
}
