// Package urlbuilder produces Robinhood Connect deep links for offramp
// and pre-selected onramp transfers.
package urlbuilder

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
)

const (
	OfframpBaseURL  = "https://applink.robinhood.com/u/connect"
	OnrampBaseURL   = "https://robinhood.com/connect/amount"
	DefaultAppURL   = "http://localhost:3030"
	DefaultFiatCode = "USD"
)

// ConnectIDIssuer exchanges a withdrawal address for a Robinhood connect id.
type ConnectIDIssuer interface {
	CreateConnectID(ctx context.Context, withdrawalAddress, userIdentifier string) (string, error)
}

// AddressResolver maps an asset symbol to its deposit address.
type AddressResolver interface {
	Resolve(symbol string) (domain.DepositAddress, error)
}

// TransferURL is a built deep link plus the parameters that went into it.
type TransferURL struct {
	URL         string            `json:"url"`
	ReferenceID string            `json:"referenceId,omitempty"`
	ConnectID   string            `json:"connectId,omitempty"`
	Params      map[string]string `json:"params"`
}

// Builder holds the per-deployment values every URL needs.
type Builder struct {
	applicationID string
	appURL        string
	resolver      AddressResolver
	issuer        ConnectIDIssuer
	log           *slog.Logger

	now   func() time.Time
	newID func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithResolver sets the deposit address lookup used for onramp links.
func WithResolver(r AddressResolver) Option {
	return func(b *Builder) { b.resolver = r }
}

// WithConnectIDIssuer sets the connect id exchange used for onramp links.
func WithConnectIDIssuer(i ConnectIDIssuer) Option {
	return func(b *Builder) { b.issuer = i }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// New creates a Builder. An empty appURL falls back to DefaultAppURL.
func New(applicationID, appURL string, opts ...Option) *Builder {
	if appURL == "" {
		appURL = DefaultAppURL
	}
	b := &Builder{
		applicationID: applicationID,
		appURL:        strings.TrimRight(appURL, "/"),
		log:           slog.Default(),
		now:           time.Now,
		newID:         NewTrackingID,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With("component", "urlbuilder")
	return b
}

// CallbackURL is where Robinhood sends the user back to.
func (b *Builder) CallbackURL() string {
	return b.appURL + "/callback"
}
