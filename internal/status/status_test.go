package status

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
)

const testRef = "123e4567-e89b-42d3-a456-426614174000"

// =============================================================================
// Mocks
// =============================================================================

type mockAPI struct {
	mu     sync.Mutex
	calls  int
	states []domain.OrderState
	err    error
	redeem domain.DepositRedemption
}

func (m *mockAPI) GetOrderStatus(_ context.Context, ref string) (domain.OrderStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.OrderStatus{}, m.err
	}
	i := m.calls - 1
	if i >= len(m.states) {
		i = len(m.states) - 1
	}
	return domain.OrderStatus{ReferenceID: ref, Status: m.states[i]}, nil
}

func (m *mockAPI) GetOrderDetails(_ context.Context, connectID string) (domain.OrderStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.OrderStatus{}, m.err
	}
	return domain.OrderStatus{ConnectID: connectID, Status: domain.OrderSucceeded}, nil
}

func (m *mockAPI) RedeemDepositAddress(_ context.Context, _ string) (domain.DepositRedemption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.redeem, m.err
}

// =============================================================================
// Tests
// =============================================================================

func TestResolver_ValidatesBeforeCalling(t *testing.T) {
	api := &mockAPI{states: []domain.OrderState{domain.OrderSucceeded}}
	r := NewResolver(api, nil)
	ctx := context.Background()

	if _, err := r.FetchStatus(ctx, "  "); !errors.Is(err, ErrMissingReferenceID) {
		t.Errorf("expected missing reference, got %v", err)
	}
	if _, err := r.FetchStatus(ctx, "abc"); !errors.Is(err, ErrInvalidReferenceID) {
		t.Errorf("expected invalid reference, got %v", err)
	}
	if _, err := r.RedeemDepositAddress(ctx, "abc"); !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := r.OrderDetails(ctx, ""); !errors.Is(err, ErrMissingConnectID) {
		t.Errorf("expected missing connect id, got %v", err)
	}
	if api.calls != 0 {
		t.Errorf("expected no upstream calls, got %d", api.calls)
	}
}

func TestResolver_FetchStatus(t *testing.T) {
	api := &mockAPI{states: []domain.OrderState{domain.OrderInProgress}}
	order, err := NewResolver(api, nil).FetchStatus(context.Background(), " "+testRef+" ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ReferenceID != testRef || order.Status != domain.OrderInProgress {
		t.Errorf("unexpected order %+v", order)
	}
}

func TestResolver_UpstreamErrorsKeepKind(t *testing.T) {
	api := &mockAPI{err: &domain.UpstreamError{Op: "order_status", StatusCode: 404, Kind: domain.ErrUpstreamNotFound}}
	_, err := NewResolver(api, nil).FetchStatus(context.Background(), testRef)
	if !errors.Is(err, domain.ErrUpstreamNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != 404 {
		t.Errorf("expected UpstreamError with status 404, got %v", err)
	}
}

func TestResolver_Redeem(t *testing.T) {
	want := domain.DepositRedemption{Address: "rX", AddressTag: "7", AssetCode: "XRP", AssetAmount: "3", NetworkCode: domain.NetworkXRP}
	got, err := NewResolver(&mockAPI{redeem: want}, nil).RedeemDepositAddress(context.Background(), testRef)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestResolver_PollStopsAtTerminal(t *testing.T) {
	api := &mockAPI{states: []domain.OrderState{
		domain.OrderInProgress, domain.OrderInProgress, domain.OrderSucceeded, domain.OrderInProgress,
	}}

	var seen []domain.OrderState
	order, err := NewResolver(api, nil).Poll(context.Background(), testRef, time.Millisecond, func(o domain.OrderStatus) {
		seen = append(seen, o.Status)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderSucceeded {
		t.Errorf("expected succeeded, got %s", order.Status)
	}
	if api.calls != 3 {
		t.Errorf("expected polling to stop after 3 calls, got %d", api.calls)
	}
	if len(seen) != 2 || seen[0] != domain.OrderInProgress || seen[1] != domain.OrderSucceeded {
		t.Errorf("expected one update per state change, got %v", seen)
	}
}

func TestResolver_PollStopsOnError(t *testing.T) {
	api := &mockAPI{err: &domain.UpstreamError{Op: "order_status", Kind: domain.ErrUpstreamNetwork}}
	_, err := NewResolver(api, nil).Poll(context.Background(), testRef, time.Millisecond, nil)
	if !errors.Is(err, domain.ErrUpstreamNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if api.calls != 1 {
		t.Errorf("failed lookups must not be repeated, got %d calls", api.calls)
	}
}

func TestTracker_Monotonic(t *testing.T) {
	for _, terminal := range []domain.OrderState{domain.OrderSucceeded, domain.OrderFailed, domain.OrderCancelled} {
		tr := NewTracker()
		if tr.Done() {
			t.Fatal("new tracker must not be done")
		}
		tr.Observe(domain.OrderInProgress)
		if got := tr.Observe(terminal); got != terminal {
			t.Fatalf("expected %s, got %s", terminal, got)
		}
		for _, later := range []domain.OrderState{domain.OrderInProgress, domain.OrderSucceeded, domain.OrderFailed} {
			if got := tr.Observe(later); got != terminal {
				t.Errorf("state regressed from %s to %s", terminal, got)
			}
		}
		if !tr.Done() {
			t.Errorf("tracker should be done after %s", terminal)
		}
	}
}

func TestTracker_IgnoresUnknown(t *testing.T) {
	tr := NewTracker()
	tr.Observe(domain.OrderInProgress)
	if got := tr.Observe("ORDER_STATUS_WHATEVER"); got != domain.OrderInProgress {
		t.Errorf("unknown state must be ignored, got %s", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want Action
	}{
		{ErrInvalidReferenceID, ActionFatal},
		{&domain.UpstreamError{Kind: domain.ErrUpstreamNotFound}, ActionFatal},
		{&domain.UpstreamError{Kind: domain.ErrUpstreamAuth}, ActionFatal},
		{&domain.UpstreamError{Kind: domain.ErrMalformedResponse}, ActionFatal},
		{fmt.Errorf("wrap: %w", &domain.UpstreamError{Kind: domain.ErrUpstreamServer}), ActionRetryable},
		{&domain.UpstreamError{Kind: domain.ErrUpstreamNetwork}, ActionRetryable},
		{&domain.UpstreamError{Kind: domain.ErrUpstreamTimeout}, ActionRetryable},
		{errors.New("boom"), ActionFatal},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
