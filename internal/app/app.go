package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/timesheet-service/internal/cache"
	"github.com/magabrotheeeer/timesheet-service/internal/config"
	"github.com/magabrotheeeer/timesheet-service/internal/http/cookies"
	"github.com/magabrotheeeer/timesheet-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/timesheet-service/internal/migrations"
	"github.com/magabrotheeeer/timesheet-service/internal/session"
	authservice "github.com/magabrotheeeer/timesheet-service/internal/services/auth"
	tsservice "github.com/magabrotheeeer/timesheet-service/internal/services/timesheet"
	"github.com/magabrotheeeer/timesheet-service/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var sessions session.Store
	switch cfg.Session.Store {
	case "memory":
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	case "redis":
		sessions = session.NewRedisStore(cacheRedis, cfg.Session.TTL)
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.Session.Store)
	}

	ck := cookies.New(cfg.Session.CookieName, cfg.Session.TTL, cfg.Env == "prod")

	authService := authservice.NewAuthService(db)
	timesheetService := tsservice.NewTimesheetService(db, cacheRedis, logger)

	authLimiter := middlewarectx.NewClientLimiter(cfg.RateLimit.AuthMax, cfg.RateLimit.Window)
	apiLimiter := middlewarectx.NewClientLimiter(cfg.RateLimit.APIMax, cfg.RateLimit.Window)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, timesheetService, sessions, ck, authLimiter, apiLimiter)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
