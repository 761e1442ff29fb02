package model

// Route maps a URL path to a view and an access-control flag.
type Route struct {
	Path         string
	Name         string
	View         string
	RequiresAuth bool
}

// IsZero reports whether r is the zero Route, used for navigations whose
// source is unknown (first page load, external referer).
func (r Route) IsZero() bool {
	return r == Route{}
}

// TokenKey is the storage key under which the credential token is persisted
// for each client.
const TokenKey = "token"

// NavigationRequest is a single attempt to move from Source to Target.
// ClientID identifies the browser whose stored token is consulted.
type NavigationRequest struct {
	Target   Route
	Source   Route
	ClientID string
}
