package registry

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vietddude/ramp/internal/core/domain"
)

// =============================================================================
// Mocks
// =============================================================================

type mockSource struct {
	addresses map[string]domain.DynamicAddress
	err       error
	calls     atomic.Int32
}

func (m *mockSource) FetchDepositAddresses(
	ctx context.Context,
) (map[string]domain.DynamicAddress, domain.FetchStats, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, domain.FetchStats{}, m.err
	}
	return m.addresses, domain.FetchStats{AddressesMatched: len(m.addresses)}, nil
}

type mockRecorder struct {
	mu     sync.Mutex
	builds []*domain.RegistryBuild
	err    error
}

func (m *mockRecorder) RecordBuild(ctx context.Context, b *domain.RegistryBuild) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.builds = append(m.builds, b)
	return m.err
}

const dynamicETH = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

// =============================================================================
// Tests
// =============================================================================

func TestRegistry_NotReadyBeforeInitialize(t *testing.T) {
	r := New(StaticAddresses)

	if r.Ready() {
		t.Fatal("registry must not be ready before Initialize")
	}
	if _, err := r.Resolve("ETH"); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if report := r.ValidateAll(); report.Valid {
		t.Error("validation of an unbuilt registry must not pass")
	}
}

func TestRegistry_ResolveStatic(t *testing.T) {
	r := New(StaticAddresses)
	if _, err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	got, err := r.Resolve("eth")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Address != "0xa22d566f52b303049d27a7169ed17a925b3fdb5e" {
		t.Errorf("unexpected ETH address %s", got.Address)
	}
	if got.Source != domain.SourceStatic || got.WalletType != domain.WalletTypeStatic {
		t.Errorf("expected static source, got %s/%s", got.Source, got.WalletType)
	}

	xlm, _ := r.Resolve(" xlm ")
	if xlm.Memo != "1380611530" {
		t.Errorf("expected XLM memo, got %q", xlm.Memo)
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := New(StaticAddresses)
	_, _ = r.Initialize(context.Background())

	for _, sym := range []string{"MEW", "WIF", "TON", "", "NOT_AN_ASSET"} {
		_, err := r.Resolve(sym)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Resolve(%q): expected ErrNotFound, got %v", sym, err)
		}
	}
}

func TestRegistry_DynamicTradingOverridesStatic(t *testing.T) {
	src := &mockSource{addresses: map[string]domain.DynamicAddress{
		"ETH": {Address: dynamicETH, WalletType: domain.WalletTypeTrading, WalletID: "w-1"},
	}}
	r := New(StaticAddresses, WithWalletSource(src))

	if _, err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	got, err := r.Resolve("ETH")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Address != dynamicETH {
		t.Errorf("expected dynamic address, got %s", got.Address)
	}
	if got.Source != domain.SourceDynamicPrimary || got.WalletID != "w-1" {
		t.Errorf("expected dynamic primary w-1, got %s %s", got.Source, got.WalletID)
	}

	btc, _ := r.Resolve("BTC")
	if btc.Source != domain.SourceStatic {
		t.Errorf("symbols without a dynamic entry keep the static address, got %s", btc.Source)
	}
}

func TestRegistry_FallbackWalletStillBeatsStatic(t *testing.T) {
	src := &mockSource{addresses: map[string]domain.DynamicAddress{
		"ETH": {Address: dynamicETH, WalletType: domain.WalletTypeTradingBalance},
	}}
	r := New(StaticAddresses, WithWalletSource(src))
	_, _ = r.Initialize(context.Background())

	got, _ := r.Resolve("ETH")
	if got.Source != domain.SourceDynamicFallback || got.Address != dynamicETH {
		t.Errorf("expected dynamic fallback, got %+v", got)
	}
}

func TestRegistry_DynamicNetworkFromMetadata(t *testing.T) {
	src := &mockSource{addresses: map[string]domain.DynamicAddress{
		"pepe":    {Address: dynamicETH, WalletType: domain.WalletTypeTrading},
		"UNKNOWN": {Address: dynamicETH, WalletType: domain.WalletTypeTrading},
		"SOL":     {Address: "", WalletType: domain.WalletTypeTrading},
	}}
	r := New(nil, WithWalletSource(src))
	snap, _ := r.Initialize(context.Background())

	if snap.Len() != 1 {
		t.Fatalf("expected only PEPE to be kept, got %d entries", snap.Len())
	}
	pepe, err := r.Resolve("PEPE")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pepe.Network != domain.NetworkEthereum {
		t.Errorf("expected network from asset metadata, got %s", pepe.Network)
	}
}

func TestRegistry_DynamicFailureFallsBackToStatic(t *testing.T) {
	src := &mockSource{err: errors.New("prime: connection refused")}
	rec := &mockRecorder{}
	r := New(StaticAddresses, WithWalletSource(src), WithRecorder(rec))

	snap, err := r.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize must succeed on dynamic failure: %v", err)
	}
	if snap.Len() != len(StaticAddresses) {
		t.Errorf("expected full static table, got %d entries", snap.Len())
	}
	if snap.DynamicError() == "" {
		t.Error("expected dynamic error to be recorded on the snapshot")
	}
	if snap.FetchStats() != nil {
		t.Error("failed lookups carry no fetch stats")
	}
	if len(rec.builds) != 1 || rec.builds[0].DynamicError == "" {
		t.Errorf("expected one recorded build with the dynamic error, got %+v", rec.builds)
	}
}

func TestRegistry_InitializeIsIdempotent(t *testing.T) {
	src := &mockSource{addresses: map[string]domain.DynamicAddress{}}
	r := New(StaticAddresses, WithWalletSource(src))

	var wg sync.WaitGroup
	snaps := make([]*Snapshot, 8)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i], _ = r.Initialize(context.Background())
		}(i)
	}
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Errorf("expected a single build, source called %d times", got)
	}
	for i, s := range snaps {
		if s != snaps[0] {
			t.Errorf("caller %d got a different snapshot", i)
		}
	}
}

func TestRegistry_RebuildKeepsGoodDynamicSnapshot(t *testing.T) {
	src := &mockSource{addresses: map[string]domain.DynamicAddress{
		"ETH": {Address: dynamicETH, WalletType: domain.WalletTypeTrading},
	}}
	r := New(StaticAddresses, WithWalletSource(src))
	first, _ := r.Initialize(context.Background())

	src.err = errors.New("prime unavailable")
	kept, err := r.Rebuild(context.Background())
	if err == nil {
		t.Fatal("expected rebuild to report the dynamic failure")
	}
	if kept != first || r.Snapshot() != first {
		t.Error("expected the previous snapshot to stay live")
	}

	eth, _ := r.Resolve("ETH")
	if eth.Address != dynamicETH {
		t.Errorf("expected dynamic address to survive, got %s", eth.Address)
	}
}

func TestRegistry_RebuildAbortedContext(t *testing.T) {
	r := New(StaticAddresses)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Initialize(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if r.Ready() {
		t.Error("an aborted build must leave the registry not ready")
	}
}

func TestRegistry_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	a := map[string]domain.DynamicAddress{}
	b := map[string]domain.DynamicAddress{}
	for _, e := range StaticAddresses {
		a[e.Symbol] = domain.DynamicAddress{Address: e.Address, Memo: e.Memo, WalletType: domain.WalletTypeTrading}
		b[e.Symbol] = domain.DynamicAddress{Address: e.Address, Memo: e.Memo, WalletType: domain.WalletTypeTradingBalance}
	}
	src := &alternatingSource{tables: []map[string]domain.DynamicAddress{a, b}}
	r := New(StaticAddresses, WithWalletSource(src))
	_, _ = r.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				breakdown := r.Snapshot().SourceBreakdown()
				if len(breakdown) != 1 {
					t.Errorf("observed a mixed snapshot: %v", breakdown)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if _, err := r.Rebuild(context.Background()); err != nil {
			t.Fatalf("Rebuild failed: %v", err)
		}
	}
	cancel()
	wg.Wait()
}

type alternatingSource struct {
	tables []map[string]domain.DynamicAddress
	n      atomic.Int32
}

func (s *alternatingSource) FetchDepositAddresses(
	ctx context.Context,
) (map[string]domain.DynamicAddress, domain.FetchStats, error) {
	i := int(s.n.Add(1)) % len(s.tables)
	return s.tables[i], domain.FetchStats{}, nil
}

func TestRegistry_EnabledAndMissing(t *testing.T) {
	static := []StaticEntry{
		{Symbol: "BTC", Network: domain.NetworkBitcoin, Address: "3NJ48qerB4sWE8qEF1bRzk7jXKh8AJnbBC"},
		{Symbol: "ETH", Network: domain.NetworkEthereum, Address: "0xa22d566f52b303049d27a7169ed17a925b3fdb5e"},
		{Symbol: "SOL", Network: domain.NetworkSolana, Address: "DPsUYCziRFjW8dcvitvtrJJfxbPUb1X7Ty8ybn3hRwM1"},
		{Symbol: "USDC", Network: domain.NetworkEthereum, Address: "not-an-address"},
		{Symbol: "MATIC", Network: domain.NetworkPolygon, Address: "0x11362ec5cc119448225abbbb1c9c67e22e776cdd"},
	}
	r := New(static)
	_, _ = r.Initialize(context.Background())

	var enabled []string
	for _, l := range r.Enabled() {
		enabled = append(enabled, l.Symbol)
		if l.Deposit == nil || l.Deposit.Address == "" {
			t.Errorf("%s listed without a deposit address", l.Symbol)
		}
	}
	if want := []string{"BTC", "ETH", "SOL"}; !reflect.DeepEqual(enabled, want) {
		t.Errorf("expected enabled %v, got %v", want, enabled)
	}

	missing := r.Missing()
	if len(missing) == 0 || missing[0].Symbol != "USDC" {
		t.Fatalf("expected USDC (malformed address) first among missing, got %v", missing)
	}
	for i := 1; i < len(missing); i++ {
		prev, cur := missing[i-1], missing[i]
		if prev.SortOrder > cur.SortOrder || (prev.SortOrder == cur.SortOrder && prev.Symbol > cur.Symbol) {
			t.Errorf("missing list out of order at %d: %s before %s", i, prev.Symbol, cur.Symbol)
		}
	}
	for _, a := range missing {
		if a.Symbol == "MATIC" {
			t.Error("disabled assets are never listed")
		}
	}

	featured := r.Featured()
	if len(featured) != 3 || featured[0].Symbol != "BTC" || featured[1].Symbol != "ETH" || featured[2].Symbol != "SOL" {
		t.Errorf("unexpected featured listing %+v", featured)
	}
}

func TestRegistry_SnapshotBreakdowns(t *testing.T) {
	src := &mockSource{addresses: map[string]domain.DynamicAddress{
		"ETH": {Address: dynamicETH, WalletType: domain.WalletTypeTrading},
		"BTC": {Address: "3NJ48qerB4sWE8qEF1bRzk7jXKh8AJnbBC", WalletType: domain.WalletTypeOther},
	}}
	r := New(StaticAddresses, WithWalletSource(src))
	snap, _ := r.Initialize(context.Background())

	sources := snap.SourceBreakdown()
	if sources[domain.SourceDynamicPrimary] != 1 || sources[domain.SourceDynamicFallback] != 1 {
		t.Errorf("unexpected source breakdown %v", sources)
	}
	if sources[domain.SourceStatic] != len(StaticAddresses)-2 {
		t.Errorf("expected %d static entries, got %d", len(StaticAddresses)-2, sources[domain.SourceStatic])
	}

	types := snap.WalletTypes()
	if types[domain.WalletTypeTrading] != 1 || types[domain.WalletTypeOther] != 1 {
		t.Errorf("unexpected wallet types %v", types)
	}

	entries := snap.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Symbol >= entries[i].Symbol {
			t.Fatalf("entries not sorted at %d", i)
		}
	}
}

func TestRegistry_RecorderFailureDoesNotFailBuild(t *testing.T) {
	rec := &mockRecorder{err: errors.New("db down")}
	r := New(StaticAddresses, WithRecorder(rec))

	if _, err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("recorder errors must not fail the build: %v", err)
	}
	if !r.Ready() {
		t.Error("expected registry to be ready")
	}
	if len(rec.builds) != 1 {
		t.Fatalf("expected one recorded build, got %d", len(rec.builds))
	}
	b := rec.builds[0]
	if b.ID == "" || b.Trigger != "initialize" || b.Entries != len(StaticAddresses) {
		t.Errorf("unexpected build record %+v", b)
	}
	if !strings.Contains(strings.Join(b.Warnings, "\n"), "placeholder") {
		t.Error("expected placeholder warnings in the recorded build")
	}
}
