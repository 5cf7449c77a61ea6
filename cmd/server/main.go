package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	authmodule "github.com/wendisay28/buscartpro/modules/auth"
	"github.com/wendisay28/buscartpro/pkg/auth"
	"github.com/wendisay28/buscartpro/pkg/config"
	"github.com/wendisay28/buscartpro/pkg/environment"
	"github.com/wendisay28/buscartpro/pkg/httpserver"
	"github.com/wendisay28/buscartpro/pkg/logger"
	"github.com/wendisay28/buscartpro/pkg/pg"
	"github.com/wendisay28/buscartpro/pkg/ratelimiter"
	"github.com/wendisay28/buscartpro/pkg/redis"
)

type appConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	HTTP    httpserver.Config
	PG      pg.Config
	Redis   redis.Config
	OIDC    auth.OIDCConfig
	Session auth.SessionConfig

	LoginThrottle ratelimiter.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(env, "buscartpro"),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, env, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, env environment.Environment, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	verifier, err := auth.NewOIDCVerifier(ctx, cfg.OIDC)
	if err != nil {
		return err
	}

	sessions, err := auth.NewSessionService(cfg.Session)
	if err != nil {
		return err
	}

	loginLimiter, err := ratelimiter.NewBucket(
		ratelimiter.NewRedisStore(redisClient, "ratelimit"),
		cfg.LoginThrottle,
	)
	if err != nil {
		return err
	}

	store := authmodule.NewPostgresUserStore(pool)
	resolver := auth.NewReconciliationService(store, auth.WithReconcilerLogger(log))
	credentials := auth.NewCredentialService(store, sessions,
		auth.WithCredentialLogger(log),
		auth.WithLoginLimiter(loginLimiter),
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Mount("/api/auth", authmodule.NewService(credentials, sessions, verifier, resolver).Handler())

	log.InfoContext(ctx, "starting server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("env", string(env)),
	)
	return httpserver.New(cfg.HTTP, log).Run(ctx, r)
}
