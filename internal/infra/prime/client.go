// Package prime reads wallet deposit addresses from Coinbase Prime.
package prime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/infra/upstream"
	"github.com/vietddude/ramp/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.prime.coinbase.com"
	service        = "prime"
	maxBodyBytes   = 4 << 20
)

// Config holds Prime API credentials.
type Config struct {
	BaseURL     string
	AccessKey   string
	SigningKey  string
	Passphrase  string
	PortfolioID string
	Timeout     time.Duration
}

// Client is a read-only Prime REST client.
type Client struct {
	baseURL     string
	portfolioID string
	signer      *Signer
	httpClient  *http.Client
	now         func() time.Time
	log         *slog.Logger
}

// NewClient creates a Prime client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		portfolioID: cfg.PortfolioID,
		signer:      NewSigner(cfg.AccessKey, cfg.SigningKey, cfg.Passphrase),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		now: time.Now,
		log: slog.Default().With("component", "prime"),
	}
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	start := time.Now()
	err := c.call(ctx, op, path, query, out)

	metrics.UpstreamLatency.WithLabelValues(service, op).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequests.WithLabelValues(service, op, upstream.Outcome(err)).Inc()
	return err
}

func (c *Client) call(ctx context.Context, op, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.signer.Apply(req, c.now(), "")

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
