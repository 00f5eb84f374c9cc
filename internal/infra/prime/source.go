package prime

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
)

// symbolAliases maps Prime symbols to the ones Robinhood uses.
var symbolAliases = map[string]string{
	"POL": "MATIC",
}

// NormalizeSymbol uppercases a Prime symbol and applies aliases.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if alias, ok := symbolAliases[s]; ok {
		return alias
	}
	return s
}

// ClassifyWallet maps a wallet name to its type.
func ClassifyWallet(name string) domain.WalletType {
	switch {
	case name == "Trading":
		return domain.WalletTypeTrading
	case strings.Contains(name, "Trading Balance"):
		return domain.WalletTypeTradingBalance
	default:
		return domain.WalletTypeOther
	}
}

func walletRank(t domain.WalletType) int {
	switch t {
	case domain.WalletTypeTrading:
		return 0
	case domain.WalletTypeTradingBalance:
		return 1
	default:
		return 2
	}
}

// WalletService is the part of the Prime wallets API a Source reads.
// *Client implements it.
type WalletService interface {
	ListWallets(ctx context.Context) ([]Wallet, error)
	DepositInstructions(ctx context.Context, walletID string) (address, memo string, err error)
}

// Source adapts a WalletService to the registry's dynamic address source.
type Source struct {
	wallets WalletService
	now     func() time.Time
	log     *slog.Logger
}

// NewSource creates a wallet source backed by wallets.
func NewSource(wallets WalletService) *Source {
	return &Source{
		wallets: wallets,
		now:     time.Now,
		log:     slog.Default().With("component", "prime"),
	}
}

// FetchDepositAddresses picks one wallet per symbol, preferring the exact
// "Trading" wallet, then "Trading Balance", then any other, and returns
// its deposit instructions. A wallet whose instructions cannot be read is
// skipped in favour of the next candidate.
func (s *Source) FetchDepositAddresses(ctx context.Context) (map[string]domain.DynamicAddress, domain.FetchStats, error) {
	wallets, err := s.wallets.ListWallets(ctx)
	if err != nil {
		return nil, domain.FetchStats{}, fmt.Errorf("list wallets: %w", err)
	}

	bySymbol := make(map[string][]Wallet)
	for _, w := range wallets {
		sym := NormalizeSymbol(w.Symbol)
		if sym == "" {
			continue
		}
		bySymbol[sym] = append(bySymbol[sym], w)
	}

	symbols := make([]string, 0, len(bySymbol))
	for sym := range bySymbol {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	out := make(map[string]domain.DynamicAddress, len(symbols))
	stats := domain.FetchStats{
		WalletsFetched: len(wallets),
		WalletTypes:    make(map[domain.WalletType]int),
	}

	for _, sym := range symbols {
		candidates := bySymbol[sym]
		sort.SliceStable(candidates, func(i, j int) bool {
			return walletRank(ClassifyWallet(candidates[i].Name)) < walletRank(ClassifyWallet(candidates[j].Name))
		})

		for _, w := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, domain.FetchStats{}, err
			}
			address, memo, err := s.wallets.DepositInstructions(ctx, w.ID)
			if err != nil {
				s.log.Warn("Failed to read deposit instructions", "symbol", sym, "wallet", w.Name, "error", err)
				continue
			}
			if address == "" {
				continue
			}

			wt := ClassifyWallet(w.Name)
			out[sym] = domain.DynamicAddress{Address: address, Memo: memo, WalletType: wt, WalletID: w.ID}
			stats.WalletTypes[wt]++
			break
		}
	}

	stats.AddressesMatched = len(out)
	stats.FetchedAt = s.now()

	s.log.Info("Fetched Prime deposit addresses",
		"wallets", stats.WalletsFetched,
		"matched", stats.AddressesMatched,
		"types", stats.WalletTypes,
	)
	return out, stats, nil
}
