// Package logger provides slog logger construction with environment-driven
// configuration and a small set of attribute helpers shared across the auth
// core (logger.Error, logger.UserID, logger.Provider, logger.Component).
//
// Services accept a *slog.Logger via functional options and default to a
// discard logger, keeping log output an explicit wiring decision:
//
//	log := logger.New(logger.WithService("authkit"), logger.WithFormat(logger.FormatText))
//	issuer := session.NewIssuer(cfg, session.WithLogger(log))
package logger
