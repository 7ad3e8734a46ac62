package authn

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artikahq/authkit/pkg/logger"
	"github.com/artikahq/authkit/pkg/sanitizer"
)

// OAuthAuthenticator defines the interface for OAuth-based authentication.
type OAuthAuthenticator interface {
	// AuthURL generates the provider authorization URL with CSRF protection.
	AuthURL(ctx context.Context) (string, error)

	// Auth handles the OAuth callback: consumes the state token, resolves
	// the provider profile, and returns the matching or newly provisioned
	// identity.
	Auth(ctx context.Context, code, state string) (*Identity, error)

	// Unlink removes the provider link from an identity.
	Unlink(ctx context.Context, identityID uuid.UUID) error
}

// Ensure oauthService implements OAuthAuthenticator.
var _ OAuthAuthenticator = (*oauthService)(nil)

type oauthService struct {
	storage  OAuthStorage
	states   StateStore
	adapter  ProviderAdapter
	logger   *slog.Logger
	stateTTL time.Duration

	// Hook run after a brand-new identity is provisioned via OAuth (sync,
	// bounded by a timeout).
	afterProvision func(ctx context.Context, identity *Identity) error
}

// OAuthOption configures an OAuth service during construction.
type OAuthOption func(*oauthService)

// WithOAuthLogger sets a custom logger for the service.
func WithOAuthLogger(l *slog.Logger) OAuthOption {
	return func(s *oauthService) {
		s.logger = l
	}
}

// WithStateTTL configures the lifetime of CSRF state tokens.
func WithStateTTL(ttl time.Duration) OAuthOption {
	return func(s *oauthService) {
		s.stateTTL = ttl
	}
}

// WithAfterProvision sets a hook that runs after a new identity is created
// through this provider.
func WithAfterProvision(fn func(context.Context, *Identity) error) OAuthOption {
	return func(s *oauthService) {
		s.afterProvision = fn
	}
}

// NewOAuthService constructs a provider-agnostic OAuth service around one
// adapter. Defaults: stateTTL = 10 minutes, discard logger.
func NewOAuthService(storage OAuthStorage, states StateStore, adapter ProviderAdapter, opts ...OAuthOption) OAuthAuthenticator {
	s := &oauthService{
		storage:  storage,
		states:   states,
		adapter:  adapter,
		logger:   logger.NewDiscard(),
		stateTTL: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AuthURL generates an authorization URL with a one-time state parameter.
func (s *oauthService) AuthURL(ctx context.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	if err := s.states.StoreState(ctx, state, time.Now().Add(s.stateTTL)); err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}

	url, err := s.adapter.AuthURL(state)
	if err != nil {
		return "", NewProviderError(s.adapter.ProviderID(), err)
	}
	return url, nil
}

// Auth handles the OAuth callback. The state token is consumed exactly once
// to prevent CSRF and replay. Handshake failures are wrapped in a
// ProviderError carrying the provider name; the caller must not retry
// automatically.
func (s *oauthService) Auth(ctx context.Context, code, state string) (*Identity, error) {
	if err := s.states.ConsumeState(ctx, state); err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("failed to validate state: %w", err)
	}

	profile, err := s.adapter.ResolveProfile(ctx, code)
	if err != nil {
		s.logger.Warn("provider handshake failed",
			logger.Provider(s.adapter.ProviderID()),
			logger.Error(err),
			logger.Component("oauth"),
		)
		return nil, NewProviderError(s.adapter.ProviderID(), err)
	}

	if profile.ProviderUserID == "" {
		return nil, NewProviderError(s.adapter.ProviderID(), errors.New("profile missing provider user id"))
	}
	if profile.Email == "" {
		return nil, NewProviderError(s.adapter.ProviderID(), ErrNoPrimaryEmail)
	}

	profile.Email = sanitizer.NormalizeEmail(profile.Email)

	// Account linking trusts the provider's email assertion only when the
	// provider marks it verified; an unverified match would allow takeover
	// of password-based accounts.
	if !profile.EmailVerified {
		return nil, ErrUnverifiedEmail
	}

	return s.resolveIdentity(ctx, profile)
}

// Unlink removes the adapter's provider link from an identity.
func (s *oauthService) Unlink(ctx context.Context, identityID uuid.UUID) error {
	if err := s.storage.RemoveOAuthLink(ctx, identityID, s.adapter.ProviderID()); err != nil {
		if errors.Is(err, ErrNoProviderLink) {
			return ErrNoProviderLink
		}
		return fmt.Errorf("failed to unlink %s account: %w", s.adapter.ProviderID(), err)
	}
	return nil
}

// resolveIdentity finds or provisions the identity for a provider profile.
// Resolution order: existing provider link, then email match against an
// existing identity (which gains a link), then a fresh identity with no
// password hash.
func (s *oauthService) resolveIdentity(ctx context.Context, profile ProviderProfile) (*Identity, error) {
	identity, err := s.storage.GetIdentityByOAuth(ctx, s.adapter.ProviderID(), profile.ProviderUserID)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, ErrIdentityNotFound) {
		return nil, fmt.Errorf("failed to check oauth link: %w", err)
	}

	identity, err = s.storage.GetIdentityByEmail(ctx, profile.Email)
	if err == nil {
		// Same email, first sign-in through this provider: reuse the
		// existing account and record the link.
		if err := s.storage.StoreOAuthLink(ctx, identity.ID, s.adapter.ProviderID(), profile.ProviderUserID); err != nil {
			return nil, fmt.Errorf("failed to link %s account: %w", s.adapter.ProviderID(), err)
		}
		s.logger.Info("linked provider to existing identity",
			logger.UserID(identity.ID.String()),
			logger.Provider(s.adapter.ProviderID()),
			logger.Component("oauth"),
		)
		return identity, nil
	}
	if !errors.Is(err, ErrIdentityNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	firstName, lastName := profile.FirstName, profile.LastName
	if firstName == "" && lastName == "" {
		firstName, lastName = splitDisplayName(profile.Name)
	}

	identity = &Identity{
		ID:         uuid.New(),
		Email:      profile.Email,
		FirstName:  sanitizer.NormalizeName(firstName),
		LastName:   sanitizer.NormalizeName(lastName),
		AuthMethod: methodForProvider(s.adapter.ProviderID()),
		CreatedAt:  time.Now(),
	}

	if err := s.storage.CreateIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	if err := s.storage.StoreOAuthLink(ctx, identity.ID, s.adapter.ProviderID(), profile.ProviderUserID); err != nil {
		// Remove the identity to keep storage consistent when the link
		// write fails.
		if deleteErr := s.storage.DeleteIdentity(ctx, identity.ID); deleteErr != nil {
			s.logger.Error("failed to cleanup identity after oauth link save failure",
				logger.UserID(identity.ID.String()),
				slog.String("email", identity.Email),
				logger.Provider(s.adapter.ProviderID()),
				logger.Error(deleteErr),
				logger.Component("oauth"),
			)
		}
		return nil, fmt.Errorf("failed to store oauth link: %w", err)
	}

	if s.afterProvision != nil {
		hookCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := s.afterProvision(hookCtx, identity); err != nil {
			s.logger.Error("afterProvision hook failed",
				logger.UserID(identity.ID.String()),
				logger.Error(err),
				logger.Provider(s.adapter.ProviderID()),
				logger.Component("oauth"),
			)
		}
	}

	return identity, nil
}

// splitDisplayName separates a provider display name into first/last parts.
func splitDisplayName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
