// Package server exposes the transfer gateway over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/ramp/internal/ratelimit"
	"github.com/vietddude/ramp/internal/registry"
	"github.com/vietddude/ramp/internal/status"
	"github.com/vietddude/ramp/internal/urlbuilder"
)

const maxBodyBytes = 64 << 10

// Config holds listener settings.
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators behind the routes.
type Deps struct {
	Registry *registry.Registry
	URLs     *urlbuilder.Builder
	Orders   *status.Resolver
	Limiter  ratelimit.Limiter      // nil disables limiting
	Checks   map[string]HealthCheck // reported by /health
	Log      *slog.Logger
}

// Server serves the Connect API routes, health and metrics.
type Server struct {
	registry *registry.Registry
	urls     *urlbuilder.Builder
	orders   *status.Resolver
	limiter  ratelimit.Limiter
	checks   map[string]HealthCheck
	log      *slog.Logger

	mux    *http.ServeMux
	server *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.Disabled{}
	}

	mux := http.NewServeMux()
	s := &Server{
		registry: deps.Registry,
		urls:     deps.URLs,
		orders:   deps.Orders,
		limiter:  limiter,
		checks:   deps.Checks,
		log:      log.With("component", "server"),
		mux:      mux,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      mux,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	s.route("POST /api/robinhood/generate-offramp-url", s.handleOfframpURL, true)
	s.route("POST /api/robinhood/generate-onramp-url", s.handleOnrampURL, true)
	s.route("GET /api/robinhood/order-status", s.handleOrderStatus, true)
	s.route("POST /api/robinhood/order-status", s.handleOrderStatus, true)
	s.route("GET /api/robinhood/order-details", s.handleOrderDetails, true)
	s.route("POST /api/robinhood/redeem-deposit-address", s.handleRedeem, true)
	s.route("GET /api/robinhood/assets", s.handleAssets, false)
	s.route("GET /api/robinhood/health", s.handleHealth, false)
	s.route("GET /health", s.handleHealth, false)
	s.route("GET /callback", s.handleCallback, false)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Handler returns the root handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) route(pattern string, h http.HandlerFunc, limited bool) {
	var handler http.Handler = h
	if limited {
		handler = s.rateLimit(pattern, handler)
	}
	s.mux.Handle(pattern, instrument(pattern, handler))
}
