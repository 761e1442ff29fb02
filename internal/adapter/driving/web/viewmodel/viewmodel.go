// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// NavLink is one entry in the page header navigation.
type NavLink struct {
	Label  string
	Path   string
	Active bool
}

// LayoutViewModel holds the chrome shared by every page.
type LayoutViewModel struct {
	Title     string
	SignedIn  bool
	CSRFToken string
	Nav       []NavLink
}

// PageViewModel holds the body of a protected page.
type PageViewModel struct {
	Heading  string
	HelpHTML string // Sanitized HTML rendered from the page's Markdown help.
}

// LoginViewModel holds the state of the login form.
type LoginViewModel struct {
	CSRFToken string
	Username  string
	Error     string
	HelpHTML  string
}
