package authn

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Authentication method identifiers recorded on each identity.
const (
	MethodCredentials   = "credentials"
	MethodOAuthGoogle   = "oauth_google"
	MethodOAuthFacebook = "oauth_facebook"
)

// OAuth provider identifiers.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// Identity is the durable record of a registered user. Identities created
// through an OAuth provider carry no password hash and cannot authenticate
// with credentials until one is set.
type Identity struct {
	ID         uuid.UUID
	Email      string
	FirstName  string
	LastName   string
	AuthMethod string
	CreatedAt  time.Time
}

// DisplayName composes the user-facing name from first and last name,
// tolerating either being empty.
func (i *Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Email
	}
	return name
}

// methodForProvider maps a provider id to its auth method identifier.
func methodForProvider(providerID string) string {
	switch providerID {
	case ProviderGoogle:
		return MethodOAuthGoogle
	case ProviderFacebook:
		return MethodOAuthFacebook
	default:
		return "oauth_" + providerID
	}
}
