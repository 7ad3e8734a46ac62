// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose migrations from an embedded filesystem, a health
// probe, and error classification helpers (duplicate key, foreign key, not
// found) used by the identity storage.
//
// Configuration comes from environment variables via the Config struct;
// see the field tags for variable names and defaults.
package pg
