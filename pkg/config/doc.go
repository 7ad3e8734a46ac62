// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration structs declare their sources with `env` field tags as
// understood by github.com/caarlos0/env. Required values use the
// `env:"NAME,required"` form so that a missing provider credential or signing
// key fails process startup instead of silently disabling a feature.
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed exactly once per process and cached;
// concurrent callers receive the same value.
package config
