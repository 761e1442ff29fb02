// Package clientid identifies browsers across requests with a long-lived
// cookie. The identifier scopes the server-side token storage the same way a
// browser scopes its local storage.
package clientid

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName is the cookie carrying the client identifier.
	CookieName = "synthpanel_client"

	// HeaderName lets non-browser callers of the JSON API name their client.
	// Anyone who can set it can act as that client, so it is only read when
	// the deployment trusts its callers.
	HeaderName = "X-Client-ID"

	cookieMaxAge = 400 * 24 * time.Hour
)

// FromCookie returns the client identifier from the browser cookie, or "" if
// there is none or it is malformed.
func FromCookie(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && valid(cookie.Value) {
		return cookie.Value
	}
	return ""
}

// FromRequest returns the client identifier carried by r. The cookie always
// wins. The header is consulted only when trustHeader is set and no valid
// cookie is present.
func FromRequest(r *http.Request, trustHeader bool) string {
	if id := FromCookie(r); id != "" {
		return id
	}
	if !trustHeader {
		return ""
	}
	if v := r.Header.Get(HeaderName); valid(v) {
		return v
	}
	return ""
}

// Ensure returns the client identifier for r, issuing a fresh one in a
// cookie on w when the request carries none.
func Ensure(w http.ResponseWriter, r *http.Request, secure bool) string {
	if cookie, err := r.Cookie(CookieName); err == nil && valid(cookie.Value) {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
	return id
}

func valid(v string) bool {
	if v == "" {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}
