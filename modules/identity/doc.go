// Package identity provides the production storage for the authentication
// core: a PostgreSQL-backed identity store (accounts, password hashes,
// provider links) and a Redis-backed one-time OAuth state store. Schema
// migrations ship embedded and run through pg.Migrate at startup.
package identity
