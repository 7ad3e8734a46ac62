package authn

import (
	"errors"
	"fmt"
)

// General authentication errors.
var (
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrEmailTaken is returned by registration when an identity with the
	// requested email already exists. Unlike login failures this is surfaced
	// distinctly, since the end user can act on it.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials deliberately covers unknown email, missing
	// password hash, and wrong password so callers cannot distinguish them.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// OAuth-specific errors.
var (
	ErrInvalidState    = errors.New("invalid or expired oauth state")
	ErrStateNotFound   = errors.New("oauth state not found")
	ErrInvalidCode     = errors.New("invalid authorization code")
	ErrNoPrimaryEmail  = errors.New("no primary email from provider")
	ErrUnverifiedEmail = errors.New("email not verified by provider")
	ErrNoProviderLink  = errors.New("no provider link found")
	// ErrProviderConfigIncomplete fails adapter construction when a client
	// id, secret, or redirect URL is missing from configuration.
	ErrProviderConfigIncomplete = errors.New("provider credentials not configured")
)

// ProviderError reports an OAuth handshake failure. The provider name is
// safe to surface; Reason is diagnostic detail intended for logs only.
type ProviderError struct {
	Provider string
	Reason   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Reason)
}

func (e *ProviderError) Unwrap() error {
	return e.Reason
}

// NewProviderError wraps a handshake failure with its provider name.
func NewProviderError(provider string, reason error) *ProviderError {
	return &ProviderError{Provider: provider, Reason: reason}
}
