// Package cookie provides a small cookie manager with secure-by-default
// attributes (HttpOnly, SameSite=Lax, Path=/). It carries the session token
// between browser and server; the token itself is signed, so the transport
// stays deliberately plain.
package cookie
