package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artikahq/authkit/pkg/authn"
	"github.com/artikahq/authkit/pkg/cookie"
	"github.com/artikahq/authkit/pkg/logger"
	"github.com/artikahq/authkit/pkg/session"
)

// callbackCookie carries the post-login destination across the OAuth
// provider round trip.
const callbackCookie = "oauth_callback"

// Service exposes the authentication HTTP surface: credential login and
// registration, OAuth flows per provider, logout, and session introspection.
type Service struct {
	cfg       Config
	creds     authn.CredentialAuthenticator
	providers map[string]authn.OAuthAuthenticator
	issuer    *session.Issuer
	transport *session.Transport
	cookies   *cookie.Manager
	logger    *slog.Logger
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService assembles the account HTTP service. The providers map is keyed
// by provider id as it appears in the URL (google, facebook).
func NewService(
	cfg Config,
	creds authn.CredentialAuthenticator,
	providers map[string]authn.OAuthAuthenticator,
	issuer *session.Issuer,
	transport *session.Transport,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:       cfg,
		creds:     creds,
		providers: providers,
		issuer:    issuer,
		transport: transport,
		cookies:   cookie.New(),
		logger:    logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the router for mounting under /auth.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", s.handleLogin)
	r.Post("/register", s.handleRegister)
	r.Post("/logout", s.handleLogout)
	r.Get("/session", s.handleSession)

	r.Get("/{provider}", s.handleOAuthStart)
	r.Get("/{provider}/callback", s.handleOAuthCallback)

	return r
}
