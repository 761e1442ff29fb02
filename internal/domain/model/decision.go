package model

// NavigationDecision tells the caller where a navigation ends up. Location is
// the target path on proceed and the login path on redirect.
type NavigationDecision struct {
	Action   NavigationAction
	Location string
}

// Proceed reports whether the navigation continues to its target unchanged.
func (d NavigationDecision) Proceed() bool {
	return d.Action == NavigationProceed
}
