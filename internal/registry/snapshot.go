package registry

import (
	"sort"
	"strings"
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
)

// Snapshot is one complete, immutable build of the address table.
type Snapshot struct {
	entries      map[string]domain.DepositAddress
	placeholders map[string]bool
	builtAt      time.Time
	fetch        *domain.FetchStats
	dynamicErr   string
}

// Lookup returns the entry for an already-normalised symbol.
func (s *Snapshot) Lookup(symbol string) (domain.DepositAddress, bool) {
	e, ok := s.entries[symbol]
	return e, ok
}

// Entries returns every deposit address sorted by symbol.
func (s *Snapshot) Entries() []domain.DepositAddress {
	out := make([]domain.DepositAddress, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Len returns the number of configured symbols.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// IsPlaceholder reports whether the symbol points at a stand-in address.
func (s *Snapshot) IsPlaceholder(symbol string) bool {
	return s.placeholders[symbol]
}

// BuiltAt is when the snapshot was assembled.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// FetchStats returns the dynamic lookup stats, or nil when the lookup was
// skipped or failed.
func (s *Snapshot) FetchStats() *domain.FetchStats {
	return s.fetch
}

// DynamicError is the dynamic lookup failure message, if any.
func (s *Snapshot) DynamicError() string {
	return s.dynamicErr
}

// SourceBreakdown counts entries per source.
func (s *Snapshot) SourceBreakdown() map[domain.AddressSource]int {
	out := make(map[domain.AddressSource]int)
	for _, e := range s.entries {
		out[e.Source]++
	}
	return out
}

// WalletTypes counts entries per wallet type.
func (s *Snapshot) WalletTypes() map[domain.WalletType]int {
	out := make(map[domain.WalletType]int)
	for _, e := range s.entries {
		out[e.WalletType]++
	}
	return out
}

func isPlaceholderAddress(address string) bool {
	return strings.EqualFold(address, FallbackEVMAddress)
}
