package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/vietddude/ramp/internal/core/domain"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestStatusError(t *testing.T) {
	if err := StatusError("op", &http.Response{StatusCode: http.StatusNoContent}, nil); err != nil {
		t.Errorf("2xx must not be an error, got %v", err)
	}

	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{"Retry-After": {"30"}}}
	err := StatusError("op", resp, []byte("slow down"))
	if !errors.Is(err, domain.ErrUpstreamServer) || !strings.Contains(err.Error(), "retry after: 30") {
		t.Errorf("unexpected 429 error %v", err)
	}

	long := strings.Repeat("x", 1000)
	err = StatusError("op", &http.Response{StatusCode: http.StatusBadGateway}, []byte(long))
	if len(err.Error()) > 300 {
		t.Errorf("error body should be truncated, got %d bytes", len(err.Error()))
	}
}

func TestTransportError(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{context.DeadlineExceeded, domain.ErrUpstreamTimeout},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), domain.ErrUpstreamTimeout},
		{timeoutErr{}, domain.ErrUpstreamTimeout},
		{errors.New("connection refused"), domain.ErrUpstreamNetwork},
		{context.Canceled, domain.ErrUpstreamNetwork},
	}
	for _, tc := range cases {
		if err := TransportError("op", tc.err); !errors.Is(err, tc.want) {
			t.Errorf("TransportError(%v) = %v, want %v", tc.err, err, tc.want)
		}
	}
}

func TestOutcome(t *testing.T) {
	if Outcome(nil) != "ok" {
		t.Error("nil should be ok")
	}
	if got := Outcome(Malformed("op", "bad")); got != "malformed" {
		t.Errorf("expected malformed, got %s", got)
	}
	if got := Outcome(errors.New("other")); got != "error" {
		t.Errorf("expected error, got %s", got)
	}
}
