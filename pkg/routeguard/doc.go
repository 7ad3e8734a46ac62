// Package routeguard gates HTTP routes behind a valid session. Protected
// paths are declared as doublestar glob patterns; everything else passes
// through untouched. Browser requests without a session are redirected to
// the sign-in page with the original URL in a callback parameter, so login
// can return the user where they started. Non-browser clients receive 401.
//
//	guard := routeguard.New(issuer, transport,
//		routeguard.WithProtectedPaths("/dashboard/**", "/profile/**"),
//	)
//	router.Use(guard.Middleware)
//
// Handlers behind the guard read the verified claims from the request
// context:
//
//	claims, ok := routeguard.ClaimsFromContext(r.Context())
package routeguard
