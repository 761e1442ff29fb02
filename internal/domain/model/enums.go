package model

// NavigationAction is the outcome of a route guard evaluation.
type NavigationAction string

const (
	NavigationProceed  NavigationAction = "proceed"
	NavigationRedirect NavigationAction = "redirect"
)
