package routeguard

import (
	"context"

	"github.com/artikahq/authkit/pkg/session"
)

type contextKey struct{}

// WithClaims attaches session claims to a context. The guard calls this for
// every authenticated request.
func WithClaims(ctx context.Context, claims session.Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext returns the session claims attached by the guard, if
// the request passed through a protected route.
func ClaimsFromContext(ctx context.Context) (session.Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(session.Claims)
	return claims, ok
}
