package session

import (
	"time"

	"github.com/artikahq/authkit/pkg/jwt"
)

// Claims is the session token payload. Subject carries the identity id;
// the name fields are denormalized so UI surfaces can render the signed-in
// user without a storage round trip.
type Claims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Valid checks the temporal claims and required fields. It is called by the
// token codec after signature verification.
func (c Claims) Valid() error {
	if c.Subject == "" {
		return jwt.ErrMissingClaims
	}
	if c.ExpiresAt > 0 && time.Now().Unix() >= c.ExpiresAt {
		return jwt.ErrExpiredToken
	}
	return nil
}

// ExpiresIn reports how long the session remains valid.
func (c Claims) ExpiresIn() time.Duration {
	return time.Until(time.Unix(c.ExpiresAt, 0))
}
