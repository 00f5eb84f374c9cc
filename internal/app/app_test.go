package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vietddude/ramp/internal/core/config"
	"github.com/vietddude/ramp/internal/ratelimit"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Server: config.ServerConfig{
			Port:         0,
			AppURL:       "http://localhost:3030",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Robinhood: config.RobinhoodConfig{
			BaseURL:       "http://127.0.0.1:1",
			ApplicationID: "app-1",
			APIKey:        "key",
			Timeout:       time.Second,
		},
		RateLimit: config.RateLimitConfig{Requests: 10, Window: time.Minute},
	}
}

func TestNew_MemoryBackends(t *testing.T) {
	a, err := New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.janitor == nil {
		t.Error("Expected in-memory limiter janitor")
	}
	if checks := a.healthChecks(); len(checks) != 0 {
		t.Errorf("Expected no dependency checks without Postgres or Redis, got %d", len(checks))
	}
	if a.Registry.Ready() {
		t.Error("Registry must not be ready before Initialize")
	}

	report, err := a.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !report.Valid {
		t.Errorf("Expected valid registry, errors: %v", report.Errors)
	}
	if !a.Registry.Ready() {
		t.Error("Expected registry ready after Initialize")
	}

	builds, err := a.Builds.ListBuilds(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListBuilds failed: %v", err)
	}
	if len(builds) != 1 || builds[0].Trigger != "initialize" {
		t.Errorf("Expected one recorded initialize build, got %+v", builds)
	}
}

func TestNew_RateLimitDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Requests = -1

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	limiter, err := a.newLimiter()
	if err != nil {
		t.Fatalf("newLimiter failed: %v", err)
	}
	if _, ok := limiter.(ratelimit.Disabled); !ok {
		t.Errorf("Expected Disabled limiter, got %T", limiter)
	}
}

func TestInitialize_PrimeFailureFallsBackToStatic(t *testing.T) {
	primeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer primeSrv.Close()

	cfg := testConfig()
	cfg.Prime = config.PrimeConfig{
		Enabled:     true,
		BaseURL:     primeSrv.URL,
		AccessKey:   "a",
		SigningKey:  "s",
		Passphrase:  "p",
		PortfolioID: "portfolio-1",
		Timeout:     time.Second,
	}

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if _, err := a.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	snap := a.Registry.Snapshot()
	if snap.DynamicError() == "" {
		t.Error("Expected dynamic lookup error to be recorded")
	}
	if _, err := a.Registry.Resolve("ETH"); err != nil {
		t.Errorf("Expected static ETH address, got %v", err)
	}
}

func TestStartStop(t *testing.T) {
	a, err := New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !a.Registry.Ready() {
		t.Error("Expected registry ready after Start")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	if err := a.Stop(stopCtx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
