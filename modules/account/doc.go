// Package account mounts the authentication HTTP surface under /auth:
//
//	POST /auth/login                credential sign-in, sets session cookie
//	POST /auth/register             create account, sets session cookie
//	POST /auth/logout               clears the session cookie
//	GET  /auth/session              session introspection for UIs
//	GET  /auth/{provider}           redirect to provider consent screen
//	GET  /auth/{provider}/callback  finish handshake, redirect to the app
//
// JSON endpoints answer with stable error codes (invalid_credentials,
// email_taken, validation_failed); the browser-facing OAuth callback
// redirects to the sign-in page with an error query parameter instead.
package account
