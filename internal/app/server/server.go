package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"lexlaboral/internal/domain/audit"
	"lexlaboral/internal/domain/auth"
	"lexlaboral/internal/domain/identity"
	"lexlaboral/internal/domain/severance"
	"lexlaboral/internal/platform/cache"
	"lexlaboral/internal/platform/config"
	"lexlaboral/internal/platform/crypto"
	"lexlaboral/internal/platform/db"
	"lexlaboral/internal/platform/jobs"
	"lexlaboral/internal/platform/metrics"
	"lexlaboral/internal/transport/http/api"
	audithandler "lexlaboral/internal/transport/http/handlers/audit"
	identityhandler "lexlaboral/internal/transport/http/handlers/identity"
	severancehandler "lexlaboral/internal/transport/http/handlers/severance"
	"lexlaboral/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *db.Pool
	Redis   *redis.Client
	Metrics *metrics.Collector
	Jobs    *jobs.Service
	Router  http.Handler
}

// Services are the collaborators the router dispatches to. Audit and
// RateLimitStore may be nil.
type Services struct {
	Severance      *severance.Service
	Identity       *identity.Service
	Audit          audithandler.EventStore
	Perms          middleware.PermissionStore
	Metrics        *metrics.Collector
	RateLimitStore middleware.RateLimitStore
	Ready          func(context.Context) error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	app := &App{Config: cfg, DB: pool}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			app.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}

	var rateStore middleware.RateLimitStore
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Redis = client
		rateStore = middleware.NewRedisRateLimitStore(client)
	}

	cipher, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		app.Close()
		return nil, err
	}
	index, err := crypto.NewBlindIndex(cfg.BlindIndexKey)
	if err != nil {
		app.Close()
		return nil, err
	}
	if !cipher.Configured() {
		slog.Warn("DATA_ENCRYPTION_KEY not set; identity extractions will not be stored")
	}

	if cfg.MetricsEnabled {
		app.Metrics = metrics.New()
	}
	auditService := audit.New(pool)
	severanceService := severance.NewService(severance.NewStore(pool), auditService, app.Metrics)
	identityService := identity.NewService(identity.NewStore(pool), cipher, index, auditService, app.Metrics)
	app.Jobs = jobs.New(pool, identityService, app.Metrics, jobs.Options{
		Retention:         cfg.IdentityRetention(),
		RetentionInterval: cfg.RetentionInterval,
	})

	app.Router = NewRouter(cfg, Services{
		Severance:      severanceService,
		Identity:       identityService,
		Audit:          auditService,
		Perms:          auth.NewStaticPermissions(),
		Metrics:        app.Metrics,
		RateLimitStore: rateStore,
		Ready:          app.ready,
	})
	return app, nil
}

func NewRouter(cfg config.Config, svc Services) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.Logger(slog.Default(), svc.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := svc.Ready(ctx); err != nil {
				slog.Warn("readiness check failed", "err", err)
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if svc.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", svc.Metrics.Handler())
	}

	var limitOpts []middleware.RateLimitOption
	if svc.RateLimitStore != nil {
		limitOpts = append(limitOpts, middleware.WithStore(svc.RateLimitStore))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, limitOpts...))
		r.Use(middleware.SensitiveRateLimit(cfg.RateLimitPerMinute, time.Minute, limitOpts...))

		severancehandler.NewHandler(svc.Severance, svc.Perms).RegisterRoutes(r)
		identityhandler.NewHandler(svc.Identity, svc.Perms).RegisterRoutes(r)
		if svc.Audit != nil {
			audithandler.NewHandler(svc.Audit, svc.Perms).RegisterRoutes(r)
		}
	})

	return router
}

// Run serves HTTP and background jobs until ctx is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	jobsCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	a.Jobs.Start(jobsCtx)

	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.Config.Addr, "env", a.Config.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Warn("redis close failed", "err", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func (a *App) ready(ctx context.Context) error {
	if err := a.DB.Ping(ctx); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}
