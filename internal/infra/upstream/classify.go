// Package upstream classifies failures of outbound HTTP calls into the
// domain error kinds.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/vietddude/ramp/internal/core/domain"
)

const maxErrorSnippet = 256

// StatusError classifies a non-2xx response. It returns nil for 2xx.
func StatusError(op string, resp *http.Response, body []byte) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	var kind error
	switch {
	case code == http.StatusNotFound:
		kind = domain.ErrUpstreamNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		kind = domain.ErrUpstreamAuth
	default:
		kind = domain.ErrUpstreamServer
	}

	detail := snippet(body)
	if code == http.StatusTooManyRequests {
		detail = fmt.Sprintf("rate limited, retry after: %s", resp.Header.Get("Retry-After"))
	}

	var err error
	if detail != "" {
		err = errors.New(detail)
	}
	return &domain.UpstreamError{Op: op, StatusCode: code, Kind: kind, Err: err}
}

// TransportError classifies a failure that produced no HTTP response.
func TransportError(op string, err error) error {
	kind := domain.ErrUpstreamNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = domain.ErrUpstreamTimeout
	}
	return &domain.UpstreamError{Op: op, Kind: kind, Err: err}
}

// Malformed reports a 2xx response that could not be used.
func Malformed(op, format string, args ...any) error {
	return &domain.UpstreamError{
		Op:         op,
		StatusCode: http.StatusOK,
		Kind:       domain.ErrMalformedResponse,
		Err:        fmt.Errorf(format, args...),
	}
}

// Outcome is the metrics label for err.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUpstreamNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUpstreamAuth):
		return "auth"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrUpstreamNetwork):
		return "network"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	default:
		return "error"
	}
}

func snippet(body []byte) string {
	if len(body) > maxErrorSnippet {
		return string(body[:maxErrorSnippet]) + "..."
	}
	return string(body)
}
