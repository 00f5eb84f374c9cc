// Package app wires configuration into a running gateway.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vietddude/ramp/internal/core/config"
	"github.com/vietddude/ramp/internal/core/worker"
	"github.com/vietddude/ramp/internal/infra/prime"
	redisclient "github.com/vietddude/ramp/internal/infra/redis"
	"github.com/vietddude/ramp/internal/infra/robinhood"
	"github.com/vietddude/ramp/internal/infra/storage"
	"github.com/vietddude/ramp/internal/infra/storage/memory"
	"github.com/vietddude/ramp/internal/infra/storage/postgres"
	"github.com/vietddude/ramp/internal/ratelimit"
	"github.com/vietddude/ramp/internal/registry"
	"github.com/vietddude/ramp/internal/server"
	"github.com/vietddude/ramp/internal/status"
	"github.com/vietddude/ramp/internal/urlbuilder"
)

// App owns every long-lived component of the gateway.
type App struct {
	cfg *config.AppConfig

	Registry  *registry.Registry
	URLs      *urlbuilder.Builder
	Orders    *status.Resolver
	Robinhood *robinhood.Client
	Builds    storage.BuildRepository

	server      *server.Server
	refresher   *worker.Refresher
	janitor     *worker.Refresher
	db          *postgres.DB
	redisClient *redisclient.Client
	log         *slog.Logger
}

// New creates the application with all dependencies initialized. Nothing is
// started until Start.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	log := slog.Default().With("component", "app")
	a := &App{cfg: cfg, log: log}

	// 1. Storage
	if cfg.Database.URL != "" {
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}
		a.db = db
		a.Builds = postgres.NewBuildRepo(db)
		log.Info("Using PostgreSQL build history", "driver", cfg.Database.Driver)
	} else {
		a.Builds = memory.NewBuildRepo()
		log.Info("Using in-memory build history")
	}

	// 2. Upstream clients
	a.Robinhood = robinhood.NewClient(robinhood.Config{
		BaseURL:       cfg.Robinhood.BaseURL,
		ApplicationID: cfg.Robinhood.ApplicationID,
		APIKey:        cfg.Robinhood.APIKey,
		Timeout:       cfg.Robinhood.Timeout,
		RateLimit:     cfg.Robinhood.RateLimit,
		Burst:         cfg.Robinhood.Burst,
	})

	opts := []registry.Option{registry.WithRecorder(a.Builds)}
	if cfg.Prime.Enabled {
		client := prime.NewClient(prime.Config{
			BaseURL:     cfg.Prime.BaseURL,
			AccessKey:   cfg.Prime.AccessKey,
			SigningKey:  cfg.Prime.SigningKey,
			Passphrase:  cfg.Prime.Passphrase,
			PortfolioID: cfg.Prime.PortfolioID,
			Timeout:     cfg.Prime.Timeout,
		})
		opts = append(opts, registry.WithWalletSource(prime.NewSource(client)))
		log.Info("Coinbase Prime wallet lookup enabled", "portfolio", cfg.Prime.PortfolioID)
	}

	// 3. Domain
	a.Registry = registry.New(registry.StaticAddresses, opts...)
	a.URLs = urlbuilder.New(cfg.Robinhood.ApplicationID, cfg.Server.AppURL,
		urlbuilder.WithResolver(a.Registry),
		urlbuilder.WithConnectIDIssuer(a.Robinhood),
	)
	a.Orders = status.NewResolver(a.Robinhood, nil)
	a.refresher = worker.NewRefresher("registry", cfg.Registry.RefreshInterval, func(ctx context.Context) error {
		_, err := a.Registry.Rebuild(ctx)
		return err
	})

	// 4. Inbound rate limiting
	limiter, err := a.newLimiter()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.server = server.NewServer(server.Config{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, server.Deps{
		Registry: a.Registry,
		URLs:     a.URLs,
		Orders:   a.Orders,
		Limiter:  limiter,
		Checks:   a.healthChecks(),
	})

	return a, nil
}

func (a *App) healthChecks() map[string]server.HealthCheck {
	checks := make(map[string]server.HealthCheck)
	if a.db != nil {
		checks["database"] = a.db.Health
	}
	if a.redisClient != nil {
		checks["redis"] = a.redisClient.Health
	}
	return checks
}

func (a *App) newLimiter() (ratelimit.Limiter, error) {
	rl := a.cfg.RateLimit
	if rl.Requests <= 0 {
		a.log.Info("Inbound rate limiting disabled")
		return ratelimit.Disabled{}, nil
	}

	if a.cfg.Redis.URL != "" {
		client, err := redisclient.NewClient(a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client
		a.log.Info("Using Redis rate limiter", "requests", rl.Requests, "window", rl.Window)
		return redisclient.NewLimiter(client, rl.Requests, rl.Window), nil
	}

	mem := ratelimit.NewMemory(rl.Requests, rl.Window)
	a.janitor = mem.Janitor(rl.Window)
	a.log.Info("Using in-memory rate limiter", "requests", rl.Requests, "window", rl.Window)
	return mem, nil
}

// Initialize performs the first registry build and validates it. With
// fail_on_invalid set, validation errors abort startup.
func (a *App) Initialize(ctx context.Context) (registry.ValidationReport, error) {
	if _, err := a.Registry.Initialize(ctx); err != nil {
		return registry.ValidationReport{}, fmt.Errorf("registry initialize: %w", err)
	}

	report := a.Registry.ValidateAll()
	for _, w := range report.Warnings {
		a.log.Warn("Registry warning", "detail", w)
	}
	for _, e := range report.Errors {
		a.log.Error("Registry error", "detail", e)
	}
	if !report.Valid && a.cfg.Registry.FailOnInvalid {
		return report, fmt.Errorf("registry invalid: %s", strings.Join(report.Errors, "; "))
	}
	return report, nil
}

// Start initializes the registry and launches the background workers and
// the HTTP server. It returns once everything is running.
func (a *App) Start(ctx context.Context) error {
	if _, err := a.Initialize(ctx); err != nil {
		return err
	}

	go a.refresher.Start(ctx)
	if a.janitor != nil {
		go a.janitor.Start(ctx)
	}
	if a.db != nil {
		a.db.StartMetricsCollector(ctx)
	}

	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("HTTP server failed", "error", err)
		}
	}()
	return nil
}

// Stop shuts down the server and releases connections.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping gateway...")
	err := a.server.Stop(ctx)
	a.Close()
	return err
}

// Close releases connections without touching the server. Safe to call on
// a partially constructed App.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn("Failed to close Redis", "error", err)
		}
		a.redisClient = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
		a.db = nil
	}
}
