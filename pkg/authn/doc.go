// Package authn implements the identity-verification core: credential
// (email + password) authentication and OAuth sign-in through pluggable
// provider adapters.
//
// The package is organized around small interfaces so storage and providers
// stay swappable. Services return opaque errors for anything a caller should
// not be able to distinguish: every credential failure collapses into
// ErrInvalidCredentials, and provider handshake failures surface as a
// ProviderError naming only the provider.
//
// # Credential Authentication
//
// CredentialAuthenticator covers registration and login with bcrypt hashing
// and configurable password strength rules:
//
//	store := authn.NewMemoryStore()
//	creds := authn.NewCredentialService(store,
//		authn.WithBcryptCost(12),
//		authn.WithAfterRegister(func(ctx context.Context, identity *authn.Identity) error {
//			return mailer.SendWelcome(ctx, identity.Email)
//		}),
//	)
//
//	identity, err := creds.Register(ctx, authn.RegisterParams{
//		FirstName: "Marina",
//		LastName:  "Kovác",
//		Email:     "marina@example.com",
//		Password:  "longenough1",
//	})
//
//	identity, err = creds.Authenticate(ctx, "marina@example.com", "longenough1")
//	if errors.Is(err, authn.ErrInvalidCredentials) {
//		// unknown email, wrong password, and OAuth-only accounts all land here
//	}
//
// # OAuth Authentication
//
// Each provider is wrapped by a ProviderAdapter; the OAuth service handles
// state generation and consumption, profile resolution, and account linking:
//
//	google, err := authn.NewGoogleAdapter(googleCfg)
//	oauth := authn.NewOAuthService(store, stateStore, google)
//
//	url, err := oauth.AuthURL(ctx)      // redirect the browser here
//	identity, err := oauth.Auth(ctx, code, state) // in the callback handler
//
// A callback whose email matches an existing identity reuses that identity
// and records the provider link; unverified provider emails are rejected to
// keep linking safe. New identities provisioned through OAuth carry no
// password hash.
//
// # Storage
//
// CredentialStorage, OAuthStorage, and StateStore abstract persistence.
// MemoryStore and MemoryStateStore ship with the package for tests and
// single-process use; production deployments back them with Postgres and
// Redis.
package authn
