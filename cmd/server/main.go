package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/artikahq/authkit/modules/account"
	"github.com/artikahq/authkit/modules/identity"
	"github.com/artikahq/authkit/pkg/authn"
	"github.com/artikahq/authkit/pkg/config"
	"github.com/artikahq/authkit/pkg/httpserver"
	"github.com/artikahq/authkit/pkg/logger"
	"github.com/artikahq/authkit/pkg/pg"
	"github.com/artikahq/authkit/pkg/redis"
	"github.com/artikahq/authkit/pkg/routeguard"
	"github.com/artikahq/authkit/pkg/session"
)

type appConfig struct {
	Logger   logger.Config
	Server   httpserver.Config
	Postgres pg.Config
	Redis    redis.Config
	Session  session.Config
	Guard    routeguard.Config
	Account  account.Config
	Google   authn.GoogleConfig
	Facebook authn.FacebookConfig
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)
	log := logger.NewFromConfig(cfg.Logger, logger.WithService("authkit"))
	logger.SetAsDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, identity.Migrations(), cfg.Postgres, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	store := identity.NewPgStore(pool)
	states := identity.NewRedisStateStore(redisClient, "oauth_state")

	creds := authn.NewCredentialService(store, authn.WithCredentialLogger(log))

	providers := make(map[string]authn.OAuthAuthenticator, 2)

	google, err := authn.NewGoogleAdapter(cfg.Google)
	if err != nil {
		return err
	}
	providers[google.ProviderID()] = authn.NewOAuthService(store, states, google,
		authn.WithOAuthLogger(log),
		authn.WithStateTTL(cfg.Google.StateTTL),
	)

	facebook, err := authn.NewFacebookAdapter(cfg.Facebook)
	if err != nil {
		return err
	}
	providers[facebook.ProviderID()] = authn.NewOAuthService(store, states, facebook,
		authn.WithOAuthLogger(log),
		authn.WithStateTTL(cfg.Facebook.StateTTL),
	)

	issuer, err := session.NewIssuerFromConfig(cfg.Session, session.WithIssuerLogger(log))
	if err != nil {
		return err
	}
	transport := session.NewTransport(cfg.Session)

	guard := routeguard.NewFromConfig(issuer, transport, cfg.Guard, routeguard.WithLogger(log))

	accountSvc := account.NewService(cfg.Account, creds, providers, issuer, transport,
		account.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(guard.Middleware)

	r.Mount("/auth", accountSvc.Handle())
	r.Get("/healthz", healthHandler(pg.Healthcheck(pool), redis.Healthcheck(redisClient)))

	srv := httpserver.New(cfg.Server, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
