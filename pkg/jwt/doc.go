// Package jwt implements a minimal JWT codec over HMAC-SHA256.
//
// The codec signs any JSON-serializable claims structure and verifies tokens
// with constant-time signature comparison and algorithm pinning. Claims types
// may implement `Valid() error` to participate in temporal validation during
// Decode; StandardClaims provides the registered exp/nbf/iat checks.
//
//	codec, err := jwt.NewCodecFromString(cfg.SigningKey)
//	token, err := codec.Encode(claims)
//	err = codec.Decode(token, &claims)
//
// Higher-level session semantics (claim schema, lifetime, renewal) live in
// pkg/session; this package only owns the wire format.
package jwt
