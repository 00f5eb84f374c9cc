// Package robinhood is a client for the Robinhood Connect partner API.
package robinhood

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/infra/upstream"
	"github.com/vietddude/ramp/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.robinhood.com"
	service        = "robinhood"
	maxBodyBytes   = 1 << 20
)

// Config holds Connect API credentials and transport settings.
type Config struct {
	BaseURL       string
	ApplicationID string
	APIKey        string
	Timeout       time.Duration
	RateLimit     float64 // requests per second, 0 = unlimited
	Burst         int
}

// Client calls the Connect API. It never retries; failures are returned
// classified as *domain.UpstreamError.
type Client struct {
	baseURL       string
	applicationID string
	apiKey        string
	httpClient    *http.Client
	limiter       *rate.Limiter
	log           *slog.Logger
}

// NewClient creates a Connect API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		applicationID: cfg.ApplicationID,
		apiKey:        cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: slog.Default().With("component", "robinhood"),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// do executes one call and records its outcome.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	start := time.Now()
	err := c.call(ctx, op, method, path, query, in, out)

	metrics.UpstreamLatency.WithLabelValues(service, op).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequests.WithLabelValues(service, op, upstream.Outcome(err)).Inc()
	if err != nil {
		c.log.Warn("Robinhood call failed", "op", op, "error", err)
	}
	return err
}

func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return upstream.TransportError(op, err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("application-id", c.applicationID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return upstream.TransportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return upstream.TransportError(op, fmt.Errorf("read response: %w", err))
	}

	if err := upstream.StatusError(op, resp, data); err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &domain.UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Kind:       domain.ErrMalformedResponse,
			Err:        fmt.Errorf("parse response: %w", err),
		}
	}
	return nil
}
