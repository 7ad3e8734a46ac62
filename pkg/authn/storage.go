package authn

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CredentialStorage defines the storage operations required for
// credential-based authentication. Implementations must treat emails as
// case-insensitive lookup keys; callers pass normalized emails.
type CredentialStorage interface {
	CreateIdentity(ctx context.Context, identity *Identity) error
	GetIdentityByID(ctx context.Context, id uuid.UUID) (*Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*Identity, error)
	DeleteIdentity(ctx context.Context, id uuid.UUID) error

	// StorePasswordHash persists the bcrypt hash for an identity.
	// GetPasswordHash returns ErrIdentityNotFound when the identity has no
	// hash, which covers OAuth-only accounts.
	StorePasswordHash(ctx context.Context, identityID uuid.UUID, hash []byte) error
	GetPasswordHash(ctx context.Context, identityID uuid.UUID) ([]byte, error)
}

// OAuthStorage defines the storage operations required by the OAuth service.
type OAuthStorage interface {
	CreateIdentity(ctx context.Context, identity *Identity) error
	GetIdentityByID(ctx context.Context, id uuid.UUID) (*Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*Identity, error)
	DeleteIdentity(ctx context.Context, id uuid.UUID) error

	// Provider link operations. A link ties a local identity to a provider
	// account by the provider's stable user id.
	StoreOAuthLink(ctx context.Context, identityID uuid.UUID, provider, providerUserID string) error
	GetIdentityByOAuth(ctx context.Context, provider, providerUserID string) (*Identity, error)
	RemoveOAuthLink(ctx context.Context, identityID uuid.UUID, provider string) error
}

// StateStore persists short-lived OAuth state tokens for CSRF protection.
type StateStore interface {
	StoreState(ctx context.Context, state string, expiresAt time.Time) error

	// ConsumeState atomically checks that the state exists and removes it,
	// returning ErrStateNotFound if it is absent, expired, or already
	// consumed. Atomicity prevents replay through concurrent callbacks.
	ConsumeState(ctx context.Context, state string) error
}
