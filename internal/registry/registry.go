// Package registry resolves asset symbols to custodial deposit addresses.
//
// A Registry merges the built-in static table with an optional wallet
// provider lookup. Each build produces a complete Snapshot that replaces the
// previous one in a single atomic store, so readers never observe a partial
// merge.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/ramp/internal/catalog"
	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/metrics"
)

// WalletSource fetches deposit addresses from a custodial wallet provider.
type WalletSource interface {
	FetchDepositAddresses(ctx context.Context) (map[string]domain.DynamicAddress, domain.FetchStats, error)
}

// BuildRecorder persists the outcome of each build.
type BuildRecorder interface {
	RecordBuild(ctx context.Context, build *domain.RegistryBuild) error
}

// Option configures a Registry.
type Option func(*Registry)

// WithWalletSource adds a dynamic address source.
func WithWalletSource(src WalletSource) Option {
	return func(r *Registry) { r.source = src }
}

// WithRecorder persists build records.
func WithRecorder(rec BuildRecorder) Option {
	return func(r *Registry) { r.recorder = rec }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// Registry holds the current deposit address snapshot.
type Registry struct {
	static   []StaticEntry
	source   WalletSource
	recorder BuildRecorder
	log      *slog.Logger
	now      func() time.Time

	buildMu sync.Mutex
	current atomic.Pointer[Snapshot]
}

// New creates a registry that is not ready until Initialize succeeds.
func New(static []StaticEntry, opts ...Option) *Registry {
	r := &Registry{
		static: static,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "registry")
	return r
}

// Initialize performs the first build. Subsequent calls return the existing
// snapshot without rebuilding.
func (r *Registry) Initialize(ctx context.Context) (*Snapshot, error) {
	if snap := r.current.Load(); snap != nil {
		return snap, nil
	}

	r.buildMu.Lock()
	defer r.buildMu.Unlock()

	// Another caller may have finished while we waited.
	if snap := r.current.Load(); snap != nil {
		return snap, nil
	}
	return r.rebuildLocked(ctx, "initialize")
}

// Rebuild assembles a fresh snapshot and swaps it in.
func (r *Registry) Rebuild(ctx context.Context) (*Snapshot, error) {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()
	return r.rebuildLocked(ctx, "rebuild")
}

func (r *Registry) rebuildLocked(ctx context.Context, trigger string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		metrics.RegistryBuilds.WithLabelValues("aborted").Inc()
		return nil, fmt.Errorf("registry build aborted: %w", err)
	}

	snap := r.build(ctx)

	// A refresh must not throw away a good dynamic table because the provider
	// is briefly unavailable.
	if prev := r.current.Load(); snap.dynamicErr != "" && prev != nil && prev.fetch != nil {
		metrics.RegistryBuilds.WithLabelValues("kept_previous").Inc()
		r.log.Warn("Dynamic address lookup failed, keeping previous snapshot",
			"trigger", trigger, "built_at", prev.builtAt)
		return prev, fmt.Errorf("registry rebuild: %s", snap.dynamicErr)
	}
	r.current.Store(snap)

	breakdown := snap.SourceBreakdown()
	for _, src := range []domain.AddressSource{
		domain.SourceStatic, domain.SourceDynamicPrimary, domain.SourceDynamicFallback,
	} {
		metrics.RegistryEntries.WithLabelValues(string(src)).Set(float64(breakdown[src]))
	}

	report := Validate(snap)
	result := "ok"
	if snap.dynamicErr != "" {
		result = "static_fallback"
	}
	metrics.RegistryBuilds.WithLabelValues(result).Inc()

	r.log.Info("Registry built",
		"trigger", trigger,
		"entries", snap.Len(),
		"static", breakdown[domain.SourceStatic],
		"dynamic_primary", breakdown[domain.SourceDynamicPrimary],
		"dynamic_fallback", breakdown[domain.SourceDynamicFallback],
		"valid", report.Valid,
	)

	if r.recorder != nil {
		rec := &domain.RegistryBuild{
			ID:              uuid.NewString(),
			Trigger:         trigger,
			BuiltAt:         snap.builtAt,
			Entries:         snap.Len(),
			SourceBreakdown: breakdown,
			DynamicError:    snap.dynamicErr,
			Valid:           report.Valid,
			Errors:          report.Errors,
			Warnings:        report.Warnings,
			Addresses:       snap.Entries(),
		}
		if err := r.recorder.RecordBuild(ctx, rec); err != nil {
			r.log.Warn("Failed to record registry build", "error", err)
		}
	}

	return snap, nil
}

// build never mutates the live snapshot. A failing source degrades to the
// static table.
func (r *Registry) build(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		entries:      make(map[string]domain.DepositAddress, len(r.static)),
		placeholders: make(map[string]bool),
		builtAt:      r.now(),
	}

	networks := make(map[string]domain.Network, len(r.static))
	for _, e := range r.static {
		symbol := normalize(e.Symbol)
		networks[symbol] = e.Network
		snap.entries[symbol] = domain.DepositAddress{
			Symbol:     symbol,
			Network:    e.Network,
			Address:    e.Address,
			Memo:       e.Memo,
			Source:     domain.SourceStatic,
			WalletType: domain.WalletTypeStatic,
		}
		if e.Placeholder || isPlaceholderAddress(e.Address) {
			snap.placeholders[symbol] = true
		}
	}

	if r.source == nil {
		return snap
	}

	dynamic, stats, err := r.source.FetchDepositAddresses(ctx)
	if err != nil {
		r.log.Warn("Dynamic address lookup failed, using static table", "error", err)
		snap.dynamicErr = err.Error()
		return snap
	}
	snap.fetch = &stats

	symbols := make([]string, 0, len(dynamic))
	for s := range dynamic {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	for _, raw := range symbols {
		d := dynamic[raw]
		symbol := normalize(raw)
		if d.Address == "" {
			continue
		}

		network, ok := networks[symbol]
		if !ok {
			asset, found := catalog.FindAsset(symbol)
			if !found {
				r.log.Debug("Skipping dynamic address for unknown asset", "symbol", symbol)
				continue
			}
			network = asset.Network
		}

		candidate := domain.DepositAddress{
			Symbol:     symbol,
			Network:    network,
			Address:    d.Address,
			Memo:       d.Memo,
			Source:     d.Source(),
			WalletType: d.WalletType,
			WalletID:   d.WalletID,
		}
		if existing, ok := snap.entries[symbol]; ok && existing.Source.Rank() >= candidate.Source.Rank() {
			continue
		}
		snap.entries[symbol] = candidate
		snap.placeholders[symbol] = isPlaceholderAddress(d.Address)
	}

	return snap
}

// Ready reports whether a snapshot is available.
func (r *Registry) Ready() bool {
	return r.current.Load() != nil
}

// Snapshot returns the current snapshot, or nil before the first build.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

// Resolve returns the deposit address for symbol. Unconfigured assets yield
// domain.ErrNotFound.
func (r *Registry) Resolve(symbol string) (domain.DepositAddress, error) {
	snap := r.current.Load()
	if snap == nil {
		return domain.DepositAddress{}, domain.ErrNotReady
	}
	sym := normalize(symbol)
	e, ok := snap.Lookup(sym)
	if !ok {
		return domain.DepositAddress{}, fmt.Errorf("%s: %w", sym, domain.ErrNotFound)
	}
	return e, nil
}

// ValidateAll validates the current snapshot.
func (r *Registry) ValidateAll() ValidationReport {
	snap := r.current.Load()
	if snap == nil {
		return ValidationReport{Errors: []string{domain.ErrNotReady.Error()}, Warnings: []string{}}
	}
	return Validate(snap)
}

// Enabled returns enabled assets that have a usable address, in listing order.
func (r *Registry) Enabled() []domain.AssetListing {
	enabled, _ := r.partition()
	return enabled
}

// Missing returns enabled assets without a usable address, in listing order.
func (r *Registry) Missing() []domain.Asset {
	_, missing := r.partition()
	return missing
}

// Featured returns enabled featured assets with a usable address, most
// popular first.
func (r *Registry) Featured() []domain.AssetListing {
	var out []domain.AssetListing
	for _, l := range r.Enabled() {
		if l.Featured {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Popularity != out[j].Popularity {
			return out[i].Popularity > out[j].Popularity
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

func (r *Registry) partition() ([]domain.AssetListing, []domain.Asset) {
	snap := r.current.Load()
	var enabled []domain.AssetListing
	var missing []domain.Asset

	// catalog.Assets is already in SortOrder, symbol order.
	for _, a := range catalog.Assets() {
		if !a.Enabled {
			continue
		}
		if snap != nil {
			if e, ok := snap.Lookup(a.Symbol); ok && catalog.ValidateAddress(e.Network, e.Address) {
				dep := e
				enabled = append(enabled, domain.AssetListing{Asset: a, Deposit: &dep})
				continue
			}
		}
		missing = append(missing, a)
	}
	return enabled, missing
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
