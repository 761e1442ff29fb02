package model

// AccessToken is the credential handed back by the upstream login endpoint.
// The value is opaque to this service.
type AccessToken struct {
	Value string
	Type  string
}
