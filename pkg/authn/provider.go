package authn

import "context"

// ProviderAdapter abstracts provider-specific OAuth behavior behind a
// minimal, provider-agnostic interface. Implementations encapsulate the
// protocol details (oauth2.Config, token exchange, profile API calls) and
// expose only the primitives the core OAuth service needs. Adding a provider
// means adding one implementation, not branching logic in the service.
type ProviderAdapter interface {
	// ProviderID returns a stable provider identifier used for storage and
	// logging, e.g. "google", "facebook".
	ProviderID() string

	// AuthURL builds the provider authorization URL for the given state token.
	AuthURL(state string) (string, error)

	// ResolveProfile performs the end-to-end flow for an authorization code:
	// exchanges the code for an access token, calls the provider's profile
	// endpoint, and returns a normalized profile. Exchange failures return
	// ErrInvalidCode; a missing email returns ErrNoPrimaryEmail. Email
	// normalization happens in the core service.
	ResolveProfile(ctx context.Context, code string) (ProviderProfile, error)
}

// ProviderProfile is the provisional identity a provider asserts for the
// authenticated end user. It is transient and never stored as-is.
type ProviderProfile struct {
	// ProviderUserID is the provider's stable user identifier as a string.
	ProviderUserID string

	Email string

	// EmailVerified indicates whether the provider asserts ownership of the
	// email. Unverified profiles are rejected by the core service.
	EmailVerified bool

	// Name is the display name from the provider. FirstName and LastName are
	// populated when the provider exposes them separately.
	Name      string
	FirstName string
	LastName  string

	AvatarURL string
}
