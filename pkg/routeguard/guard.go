package routeguard

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/artikahq/authkit/pkg/logger"
	"github.com/artikahq/authkit/pkg/session"
)

// Config holds route guard configuration.
type Config struct {
	ProtectedPaths []string `env:"GUARD_PROTECTED_PATHS" envSeparator:"," envDefault:"/dashboard/**,/profile/**"`
	SignInPath     string   `env:"GUARD_SIGNIN_PATH" envDefault:"/auth/login"`
	CallbackParam  string   `env:"GUARD_CALLBACK_PARAM" envDefault:"callbackUrl"`
}

// Guard is HTTP middleware that gates configured path patterns behind a
// valid session. Unauthenticated browser requests are redirected to the
// sign-in page with the original URL preserved; API clients get 401.
type Guard struct {
	issuer    *session.Issuer
	transport *session.Transport

	patterns      []string
	signInPath    string
	callbackParam string
	logger        *slog.Logger
	slide         bool
}

// Option configures a Guard during construction.
type Option func(*Guard)

// WithProtectedPaths overrides the glob patterns that require a session.
func WithProtectedPaths(patterns ...string) Option {
	return func(g *Guard) {
		g.patterns = patterns
	}
}

// WithSignInPath sets the redirect target for unauthenticated browsers.
func WithSignInPath(path string) Option {
	return func(g *Guard) {
		g.signInPath = path
	}
}

// WithCallbackParam sets the query parameter carrying the original URL.
func WithCallbackParam(name string) Option {
	return func(g *Guard) {
		g.callbackParam = name
	}
}

// WithLogger sets a custom logger for the guard.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = l
	}
}

// WithSlidingSessions controls whether sessions inside the renewal window
// are re-issued on authenticated requests. Enabled by default.
func WithSlidingSessions(enabled bool) Option {
	return func(g *Guard) {
		g.slide = enabled
	}
}

// New creates a route guard. Defaults: /dashboard/** and /profile/** are
// protected, sign-in lives at /auth/login, sliding sessions enabled.
func New(issuer *session.Issuer, transport *session.Transport, opts ...Option) *Guard {
	g := &Guard{
		issuer:        issuer,
		transport:     transport,
		patterns:      []string{"/dashboard/**", "/profile/**"},
		signInPath:    "/auth/login",
		callbackParam: "callbackUrl",
		logger:        logger.NewDiscard(),
		slide:         true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewFromConfig creates a guard from environment configuration.
func NewFromConfig(issuer *session.Issuer, transport *session.Transport, cfg Config, opts ...Option) *Guard {
	base := []Option{
		WithProtectedPaths(cfg.ProtectedPaths...),
		WithSignInPath(cfg.SignInPath),
		WithCallbackParam(cfg.CallbackParam),
	}
	return New(issuer, transport, append(base, opts...)...)
}

// Protects reports whether a request path matches any protected pattern.
// Patterns use doublestar globs, so "/dashboard/**" covers the section
// root and everything below it.
func (g *Guard) Protects(path string) bool {
	for _, pattern := range g.patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Middleware returns the guarding http.Handler wrapper. Requests outside
// the protected patterns pass through untouched, including their lack of
// session context.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Protects(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := g.transport.Extract(r)
		if err != nil {
			g.deny(w, r)
			return
		}

		claims, err := g.issuer.Decode(token)
		if err != nil {
			g.logger.Debug("guard rejected session",
				slog.String("path", r.URL.Path),
				logger.Error(err),
				logger.Component("routeguard"),
			)
			g.deny(w, r)
			return
		}

		if g.slide && g.issuer.ShouldRefresh(claims) {
			if renewed, err := g.issuer.Refresh(claims); err == nil {
				g.transport.Write(w, renewed)
			}
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// deny redirects browsers to the sign-in page preserving the original URL,
// and answers API clients with 401.
func (g *Guard) deny(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		target := g.signInPath + "?" + g.callbackParam + "=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
