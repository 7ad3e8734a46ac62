// Package redis connects to Redis with startup retries and exposes a health
// probe. The module uses it to back the one-time OAuth state store, where
// atomic consume semantics matter across processes.
package redis
