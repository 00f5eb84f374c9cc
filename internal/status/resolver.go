// Package status looks up Robinhood Connect orders and tracks their
// lifecycle.
package status

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/urlbuilder"
)

var (
	ErrMissingReferenceID = &domain.ValidationError{Field: "referenceId", Message: "referenceId is required"}
	ErrInvalidReferenceID = &domain.ValidationError{Field: "referenceId", Message: "Invalid referenceId format: must be a v4 UUID"}
	ErrMissingConnectID   = &domain.ValidationError{Field: "connectId", Message: "connectId is required"}
	ErrInvalidConnectID   = &domain.ValidationError{Field: "connectId", Message: "Invalid connectId format: must be a v4 UUID"}
)

// DefaultPollInterval is used when Poll is given no interval.
const DefaultPollInterval = 5 * time.Second

// OrderAPI is the subset of the Connect client the resolver needs.
type OrderAPI interface {
	GetOrderStatus(ctx context.Context, referenceID string) (domain.OrderStatus, error)
	GetOrderDetails(ctx context.Context, connectID string) (domain.OrderStatus, error)
	RedeemDepositAddress(ctx context.Context, referenceID string) (domain.DepositRedemption, error)
}

// Resolver validates ids and delegates to the Connect API. It does not
// retry or cache.
type Resolver struct {
	api OrderAPI
	log *slog.Logger
}

// NewResolver creates a resolver.
func NewResolver(api OrderAPI, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{api: api, log: log.With("component", "status")}
}

func checkID(id string, missing, invalid error) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", missing
	}
	if !urlbuilder.IsValidTrackingID(id) {
		return "", invalid
	}
	return id, nil
}

// FetchStatus returns the order started with trackingID as its referenceId.
func (r *Resolver) FetchStatus(ctx context.Context, trackingID string) (domain.OrderStatus, error) {
	id, err := checkID(trackingID, ErrMissingReferenceID, ErrInvalidReferenceID)
	if err != nil {
		return domain.OrderStatus{}, err
	}

	order, err := r.api.GetOrderStatus(ctx, id)
	if err != nil {
		r.logFailure("order status", id, err)
		return domain.OrderStatus{}, fmt.Errorf("fetch order %s: %w", id, err)
	}
	return order, nil
}

// OrderDetails returns the order identified by an onramp connectId.
func (r *Resolver) OrderDetails(ctx context.Context, connectID string) (domain.OrderStatus, error) {
	id, err := checkID(connectID, ErrMissingConnectID, ErrInvalidConnectID)
	if err != nil {
		return domain.OrderStatus{}, err
	}

	order, err := r.api.GetOrderDetails(ctx, id)
	if err != nil {
		r.logFailure("order details", id, err)
		return domain.OrderStatus{}, fmt.Errorf("fetch order details %s: %w", id, err)
	}
	return order, nil
}

// RedeemDepositAddress returns the address the user must send an offramp
// transfer to.
func (r *Resolver) RedeemDepositAddress(ctx context.Context, trackingID string) (domain.DepositRedemption, error) {
	id, err := checkID(trackingID, ErrMissingReferenceID, ErrInvalidReferenceID)
	if err != nil {
		return domain.DepositRedemption{}, err
	}

	red, err := r.api.RedeemDepositAddress(ctx, id)
	if err != nil {
		r.logFailure("redeem deposit address", id, err)
		return domain.DepositRedemption{}, fmt.Errorf("redeem deposit address %s: %w", id, err)
	}
	r.log.Info("Deposit address redeemed", "referenceId", id, "asset", red.AssetCode, "network", red.NetworkCode)
	return red, nil
}

// Poll fetches the order every interval until it is terminal, ctx is done,
// or a lookup fails. onUpdate, if set, sees every state change.
func (r *Resolver) Poll(
	ctx context.Context,
	trackingID string,
	interval time.Duration,
	onUpdate func(domain.OrderStatus),
) (domain.OrderStatus, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	tracker := NewTracker()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		order, err := r.FetchStatus(ctx, trackingID)
		if err != nil {
			return domain.OrderStatus{}, err
		}

		prev := tracker.State()
		order.Status = tracker.Observe(order.Status)
		if order.Status != prev && onUpdate != nil {
			onUpdate(order)
		}
		if tracker.Done() {
			return order, nil
		}

		select {
		case <-ctx.Done():
			return order, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Resolver) logFailure(op, id string, err error) {
	if Classify(err) == ActionRetryable {
		r.log.Warn("Robinhood lookup failed", "op", op, "id", id, "error", err)
		return
	}
	r.log.Error("Robinhood lookup failed", "op", op, "id", id, "error", err)
}
