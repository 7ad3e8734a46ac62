package session

import "errors"

var (
	// ErrInvalidSession covers every token rejection: bad signature,
	// malformed payload, expiry, and missing required claims. Callers get a
	// single opaque reason; the detailed cause goes to the logger.
	ErrInvalidSession = errors.New("session: invalid session")

	// ErrNoSession indicates the request carried no session token at all.
	ErrNoSession = errors.New("session: no session")

	ErrMissingSigningKey = errors.New("session: missing signing key")
)
