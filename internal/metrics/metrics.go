package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts outbound calls by service, operation and outcome
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ramp_upstream_requests_total",
			Help: "Total number of outbound API calls",
		},
		[]string{"service", "op", "outcome"},
	)

	// UpstreamLatency tracks outbound call latency
	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ramp_upstream_latency_seconds",
			Help:    "Outbound API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "op"},
	)

	// URLsBuilt counts deep links handed out per direction
	URLsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ramp_urls_built_total",
			Help: "Total number of Robinhood Connect URLs built",
		},
		[]string{"direction"},
	)

	// RegistryBuilds counts registry builds by result
	RegistryBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ramp_registry_builds_total",
			Help: "Total number of deposit address registry builds",
		},
		[]string{"result"},
	)

	// RegistryEntries tracks the current number of addresses per source
	RegistryEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ramp_registry_entries",
			Help: "Deposit addresses in the current registry snapshot",
		},
		[]string{"source"},
	)

	// HTTPRequests counts inbound requests per route and status code
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ramp_http_requests_total",
			Help: "Total number of inbound HTTP requests",
		},
		[]string{"route", "code"},
	)

	// RateLimited counts requests rejected by the inbound limiter
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ramp_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"route"},
	)

	// DBConnectionPoolUsage tracks the percentage of open connections in use
	DBConnectionPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ramp_db_connection_pool_usage_percent",
			Help: "Percentage of max open database connections in use",
		},
	)
)
