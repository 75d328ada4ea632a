package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/auth"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/config"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/postgres"
	redisx "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/redis"
	postgresrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/postgres"
	redisrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/redis"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/availability"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/boarding"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/cancellation"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/sales"
	httpgin "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	loc, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Business.Timezone, err)
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redisx.New(context.Background(), redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewOccurrencesPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl:ventas", 30, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	services := service.NewServices(store, cache, pubsub, limiter, service.Config{
		Availability: availability.Config{Location: loc},
		Sales: sales.Config{
			IGVBasisPoints: cfg.Business.IGVBasisPoints,
			Location:       loc,
		},
		Cancellation: cancellation.Config{Location: loc},
		Boarding:     boarding.Config{Location: loc},
	})

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := auth.NewService(store, tokens)

	router := httpgin.NewRouter(services, authSvc, tokens, idempotencyStore, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
