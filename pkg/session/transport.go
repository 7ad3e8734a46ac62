package session

import (
	"net/http"
	"strings"

	"github.com/artikahq/authkit/pkg/cookie"
)

// Transport moves session tokens between HTTP messages and the issuer.
// Tokens travel in a cookie for browsers, with an Authorization bearer
// header fallback for API clients.
type Transport struct {
	cookies    *cookie.Manager
	cookieName string
	maxAge     int
}

// NewTransport creates a session transport. The cookie MaxAge should match
// the issuer lifetime so the browser drops the cookie when the token dies.
func NewTransport(cfg Config) *Transport {
	return &Transport{
		cookies: cookie.New(
			cookie.WithSecure(cfg.CookieSecure),
			cookie.WithHTTPOnly(true),
			cookie.WithSameSite(http.SameSiteLaxMode),
		),
		cookieName: cfg.CookieName,
		maxAge:     int(cfg.Lifetime.Seconds()),
	}
}

// Extract returns the session token carried by a request, or ErrNoSession.
// The cookie wins over the Authorization header when both are present.
func (t *Transport) Extract(r *http.Request) (string, error) {
	if token, err := t.cookies.Get(r, t.cookieName); err == nil && token != "" {
		return token, nil
	}

	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
		return token, nil
	}

	return "", ErrNoSession
}

// Write sets the session cookie on a response.
func (t *Transport) Write(w http.ResponseWriter, token string) {
	t.cookies.Set(w, t.cookieName, token, cookie.WithMaxAge(t.maxAge))
}

// Clear expires the session cookie.
func (t *Transport) Clear(w http.ResponseWriter) {
	t.cookies.Delete(w, t.cookieName)
}
