package prime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
)

func TestSigner_Sign(t *testing.T) {
	s := NewSigner("access", "key", "pass")
	// Standard HMAC-SHA256 test vector, split across the payload parts.
	got := s.Sign("The quick", " brown", " fox jumps over", " the lazy dog")
	if want := "97yD9DBThCSxMpjmqm+xQ+9NWaFJRhdZl0edvC0aPNg="; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSigner_ApplyExcludesQuery(t *testing.T) {
	s := NewSigner("access", "secret", "pass")
	req := httptest.NewRequest(http.MethodGet, "/v1/portfolios/p1/wallets?cursor=abc", nil)
	s.Apply(req, time.Unix(1700000000, 0), "")

	if req.Header.Get("X-CB-ACCESS-TIMESTAMP") != "1700000000" {
		t.Errorf("unexpected timestamp %s", req.Header.Get("X-CB-ACCESS-TIMESTAMP"))
	}
	if req.Header.Get("X-CB-ACCESS-KEY") != "access" || req.Header.Get("X-CB-ACCESS-PASSPHRASE") != "pass" {
		t.Errorf("unexpected headers %v", req.Header)
	}
	want := s.Sign("1700000000", "GET", "/v1/portfolios/p1/wallets", "")
	if req.Header.Get("X-CB-ACCESS-SIGNATURE") != want {
		t.Error("signature must be computed over the path without the query")
	}
}

// =============================================================================
// Mocks
// =============================================================================

type fakePrime struct {
	t            *testing.T
	signer       *Signer
	pages        [][]Wallet
	instructions map[string][2]string
	failing      map[string]bool
	listCalls    int
}

func (f *fakePrime) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	want := f.signer.Sign(r.Header.Get("X-CB-ACCESS-TIMESTAMP"), r.Method, r.URL.Path, "")
	if r.Header.Get("X-CB-ACCESS-SIGNATURE") != want {
		f.t.Errorf("bad signature for %s", r.URL)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 4 && parts[3] == "wallets":
		page := 0
		if c := r.URL.Query().Get("cursor"); c != "" {
			page = int(c[0] - '0')
		}
		f.listCalls++
		resp := map[string]any{"wallets": f.pages[page]}
		pagination := map[string]any{"has_next": page+1 < len(f.pages)}
		if page+1 < len(f.pages) {
			pagination["next_cursor"] = string(rune('0' + page + 1))
		}
		resp["pagination"] = pagination
		_ = json.NewEncoder(w).Encode(resp)

	case len(parts) == 6 && parts[5] == "deposit_instructions":
		if r.URL.Query().Get("deposit_type") != "CRYPTO" {
			f.t.Errorf("missing deposit_type: %s", r.URL)
		}
		id := parts[4]
		if f.failing[id] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		in := f.instructions[id]
		_ = json.NewEncoder(w).Encode(map[string]any{
			"crypto_instructions": map[string]string{"address": in[0], "account_identifier": in[1]},
		})

	default:
		http.NotFound(w, r)
	}
}

type fakeWallets struct {
	wallets      []Wallet
	instructions map[string][2]string
	listErr      error
	lookups      []string
}

func (f *fakeWallets) ListWallets(context.Context) ([]Wallet, error) {
	return f.wallets, f.listErr
}

func (f *fakeWallets) DepositInstructions(_ context.Context, walletID string) (string, string, error) {
	f.lookups = append(f.lookups, walletID)
	in, ok := f.instructions[walletID]
	if !ok {
		return "", "", errors.New("no instructions")
	}
	return in[0], in[1], nil
}

func newFakeClient(t *testing.T, f *fakePrime) *Client {
	t.Helper()
	f.t = t
	f.signer = NewSigner("access", "secret", "pass")
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	c := NewClient(Config{
		BaseURL:     server.URL,
		AccessKey:   "access",
		SigningKey:  "secret",
		Passphrase:  "pass",
		PortfolioID: "p1",
		Timeout:     2 * time.Second,
	})
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestListWallets_Paginates(t *testing.T) {
	f := &fakePrime{pages: [][]Wallet{
		{{ID: "w1", Name: "Trading", Symbol: "ETH"}},
		{{ID: "w2", Name: "Trading", Symbol: "BTC"}},
		{{ID: "w3", Name: "Trading", Symbol: "SOL"}},
	}}
	wallets, err := newFakeClient(t, f).ListWallets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wallets) != 3 || f.listCalls != 3 {
		t.Fatalf("expected 3 wallets over 3 pages, got %d over %d", len(wallets), f.listCalls)
	}
	if wallets[2].ID != "w3" {
		t.Errorf("unexpected order %+v", wallets)
	}
}

func TestSource_WalletPriority(t *testing.T) {
	f := &fakePrime{
		pages: [][]Wallet{{
			{ID: "eth-other", Name: "Cold Storage", Symbol: "ETH"},
			{ID: "eth-tb", Name: "ETH Trading Balance", Symbol: "ETH"},
			{ID: "eth-trading", Name: "Trading", Symbol: "ETH"},
			{ID: "sol-tb", Name: "Trading Balance", Symbol: "SOL"},
			{ID: "sol-other", Name: "Vault", Symbol: "SOL"},
			{ID: "pol", Name: "Trading", Symbol: "pol"},
			{ID: "xlm-other", Name: "Vault", Symbol: "XLM"},
			{ID: "btc-broken", Name: "Trading", Symbol: "BTC"},
			{ID: "btc-vault", Name: "Vault", Symbol: "BTC"},
		}},
		instructions: map[string][2]string{
			"eth-other":   {"0xother", ""},
			"eth-tb":      {"0xtb", ""},
			"eth-trading": {"0xtrading", ""},
			"sol-tb":      {"SolTB", ""},
			"sol-other":   {"SolOther", ""},
			"pol":         {"0xpol", ""},
			"xlm-other":   {"GXLM", "12345"},
			"btc-vault":   {"bc1vault", ""},
		},
		failing: map[string]bool{"btc-broken": true},
	}

	src := NewSource(newFakeClient(t, f))
	src.now = func() time.Time { return time.Unix(1700000000, 0) }
	addrs, stats, err := src.FetchDepositAddresses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]domain.DynamicAddress{
		"ETH":   {Address: "0xtrading", WalletType: domain.WalletTypeTrading, WalletID: "eth-trading"},
		"SOL":   {Address: "SolTB", WalletType: domain.WalletTypeTradingBalance, WalletID: "sol-tb"},
		"MATIC": {Address: "0xpol", WalletType: domain.WalletTypeTrading, WalletID: "pol"},
		"XLM":   {Address: "GXLM", Memo: "12345", WalletType: domain.WalletTypeOther, WalletID: "xlm-other"},
		"BTC":   {Address: "bc1vault", WalletType: domain.WalletTypeOther, WalletID: "btc-vault"},
	}
	if len(addrs) != len(want) {
		t.Fatalf("expected %d addresses, got %v", len(want), addrs)
	}
	for sym, w := range want {
		if addrs[sym] != w {
			t.Errorf("%s: expected %+v, got %+v", sym, w, addrs[sym])
		}
	}

	if stats.WalletsFetched != 9 || stats.AddressesMatched != 5 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.WalletTypes[domain.WalletTypeTrading] != 2 ||
		stats.WalletTypes[domain.WalletTypeTradingBalance] != 1 ||
		stats.WalletTypes[domain.WalletTypeOther] != 2 {
		t.Errorf("unexpected wallet type distribution %v", stats.WalletTypes)
	}
	if !stats.FetchedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("unexpected fetch time %v", stats.FetchedAt)
	}
}

func TestSource_ListFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	src := NewSource(NewClient(Config{BaseURL: server.URL, PortfolioID: "p1"}))
	_, _, err := src.FetchDepositAddresses(context.Background())
	if !errors.Is(err, domain.ErrUpstreamAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestSource_WalletService(t *testing.T) {
	var _ WalletService = (*Client)(nil)

	f := &fakeWallets{
		wallets: []Wallet{
			{ID: "ada-empty", Name: "Trading", Symbol: "ADA"},
			{ID: "ada-vault", Name: "Vault", Symbol: "ADA"},
			{ID: "blank", Name: "Trading", Symbol: " "},
		},
		instructions: map[string][2]string{
			"ada-empty": {"", ""},
			"ada-vault": {"addr1vault", ""},
		},
	}
	addrs, stats, err := NewSource(f).FetchDepositAddresses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addrs["ADA"].Address != "addr1vault" || len(addrs) != 1 {
		t.Errorf("expected the vault to stand in for an empty trading wallet, got %v", addrs)
	}
	if len(f.lookups) != 2 || f.lookups[0] != "ada-empty" {
		t.Errorf("expected trading wallet looked up first, got %v", f.lookups)
	}
	if stats.WalletsFetched != 3 || stats.AddressesMatched != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	f.listErr = &domain.UpstreamError{Op: "list_wallets", Kind: domain.ErrUpstreamTimeout}
	if _, _, err := NewSource(f).FetchDepositAddresses(context.Background()); !errors.Is(err, domain.ErrUpstreamTimeout) {
		t.Errorf("expected the list error to propagate, got %v", err)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	cases := map[string]string{"POL": "MATIC", "pol": "MATIC", " eth ": "ETH", "MATIC": "MATIC"}
	for in, want := range cases {
		if got := NormalizeSymbol(in); got != want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}
