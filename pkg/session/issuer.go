package session

import (
	"log/slog"
	"time"

	"github.com/artikahq/authkit/pkg/authn"
	"github.com/artikahq/authkit/pkg/jwt"
	"github.com/artikahq/authkit/pkg/logger"
)

// Config holds session issuer configuration.
type Config struct {
	SigningKey    string        `env:"JWT_SIGNING_KEY,required"`
	Lifetime      time.Duration `env:"SESSION_LIFETIME" envDefault:"720h"`
	RenewalWindow time.Duration `env:"SESSION_RENEWAL_WINDOW" envDefault:"24h"`
	CookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"artika_session"`
	CookieSecure  bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}

// Issuer mints and verifies session tokens. Tokens are stateless: identity
// data lives in the claims and there is no server-side session record.
type Issuer struct {
	codec         *jwt.Codec
	lifetime      time.Duration
	renewalWindow time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// IssuerOption configures an Issuer during construction.
type IssuerOption func(*Issuer)

// WithLifetime sets how long issued sessions stay valid.
func WithLifetime(d time.Duration) IssuerOption {
	return func(i *Issuer) {
		i.lifetime = d
	}
}

// WithRenewalWindow sets how close to expiry a session becomes renewable.
func WithRenewalWindow(d time.Duration) IssuerOption {
	return func(i *Issuer) {
		i.renewalWindow = d
	}
}

// WithIssuerLogger sets a custom logger for the issuer.
func WithIssuerLogger(l *slog.Logger) IssuerOption {
	return func(i *Issuer) {
		i.logger = l
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates a session issuer. Defaults: 30-day lifetime, 24-hour
// renewal window.
func NewIssuer(signingKey string, opts ...IssuerOption) (*Issuer, error) {
	codec, err := jwt.NewCodecFromString(signingKey)
	if err != nil {
		return nil, ErrMissingSigningKey
	}

	i := &Issuer{
		codec:         codec,
		lifetime:      720 * time.Hour,
		renewalWindow: 24 * time.Hour,
		logger:        logger.NewDiscard(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// NewIssuerFromConfig creates an issuer from environment configuration.
func NewIssuerFromConfig(cfg Config, opts ...IssuerOption) (*Issuer, error) {
	base := []IssuerOption{
		WithLifetime(cfg.Lifetime),
		WithRenewalWindow(cfg.RenewalWindow),
	}
	return NewIssuer(cfg.SigningKey, append(base, opts...)...)
}

// Issue mints a session token for an authenticated identity.
func (i *Issuer) Issue(identity *authn.Identity) (string, error) {
	now := i.now()
	claims := Claims{
		Subject:   identity.ID.String(),
		Email:     identity.Email,
		Name:      identity.DisplayName(),
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(i.lifetime).Unix(),
	}
	return i.codec.Encode(claims)
}

// Decode verifies a session token and returns its claims. Every rejection
// reason collapses into ErrInvalidSession; the specific cause is logged at
// debug level.
func (i *Issuer) Decode(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrNoSession
	}

	var claims Claims
	if err := i.codec.Decode(token, &claims); err != nil {
		i.logger.Debug("session token rejected",
			logger.Error(err),
			logger.Component("session"),
		)
		return Claims{}, ErrInvalidSession
	}
	return claims, nil
}

// ShouldRefresh reports whether a session is inside its renewal window and
// ought to be re-issued on the next response.
func (i *Issuer) ShouldRefresh(claims Claims) bool {
	return time.Unix(claims.ExpiresAt, 0).Sub(i.now()) <= i.renewalWindow
}

// Refresh re-issues a token preserving the subject claims with a fresh
// issue time and expiry. The caller decides when, typically via
// ShouldRefresh on an authenticated request.
func (i *Issuer) Refresh(claims Claims) (string, error) {
	now := i.now()
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(i.lifetime).Unix()
	return i.codec.Encode(claims)
}
