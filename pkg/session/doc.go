// Package session issues, verifies, and transports stateless session
// tokens. An Issuer maps an authenticated identity to signed claims; a
// Transport carries tokens in an HttpOnly cookie with a bearer-header
// fallback; a Client caches the decoded session for in-process consumers
// and notifies subscribers on change.
//
// Sessions are self-contained: the claims carry the identity id, email,
// and display name, so authenticated requests need no storage round trip.
// There is no server-side revocation; a session dies only by expiry or by
// the client discarding its token. Tokens inside the renewal window are
// re-issued on the next authenticated response, which gives active users a
// sliding expiry.
//
//	issuer, err := session.NewIssuer(cfg.SigningKey,
//		session.WithLifetime(30*24*time.Hour),
//	)
//	token, err := issuer.Issue(identity)
//
//	claims, err := issuer.Decode(token)
//	if errors.Is(err, session.ErrInvalidSession) {
//		// tampered, expired, or malformed — indistinguishable on purpose
//	}
package session
