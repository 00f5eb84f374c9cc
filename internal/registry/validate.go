package registry

import (
	"fmt"

	"github.com/vietddude/ramp/internal/catalog"
)

// ValidationReport is the result of checking every configured address.
type ValidationReport struct {
	Valid    bool            `json:"valid"`
	Errors   []string        `json:"errors"`
	Warnings []string        `json:"warnings"`
	Stats    ValidationStats `json:"stats"`
}

// ValidationStats summarises address coverage of the enabled assets.
type ValidationStats struct {
	Total            int `json:"total"`
	WithAddresses    int `json:"withAddresses"`
	MissingAddresses int `json:"missingAddresses"`
	Configured       int `json:"configured"`
}

// Validate checks a snapshot. Entries are visited in symbol order so the same
// table always yields the same report.
//
// Malformed addresses, unknown networks and missing memos are errors.
// Placeholder addresses, checksum mismatches and enabled assets without an
// address are warnings.
func Validate(snap *Snapshot) ValidationReport {
	report := ValidationReport{
		Errors:   []string{},
		Warnings: []string{},
	}

	for _, e := range snap.Entries() {
		if _, ok := catalog.Lookup(e.Network); !ok {
			report.Errors = append(report.Errors,
				fmt.Sprintf("%s: unknown network %q", e.Symbol, e.Network))
			continue
		}
		if !catalog.ValidateAddress(e.Network, e.Address) {
			report.Errors = append(report.Errors,
				fmt.Sprintf("%s: invalid %s address %q", e.Symbol, e.Network, e.Address))
			continue
		}
		if catalog.RequiresMemo(e.Network) && e.Memo == "" {
			report.Errors = append(report.Errors,
				fmt.Sprintf("%s: %s deposits require a memo", e.Symbol, e.Network))
		}
		if snap.IsPlaceholder(e.Symbol) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s: placeholder address %s", e.Symbol, e.Address))
		} else if catalog.ChecksumMismatch(e.Network, e.Address) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s: address %s fails EIP-55 checksum", e.Symbol, e.Address))
		}
	}

	for _, a := range catalog.Assets() {
		if !a.Enabled {
			continue
		}
		report.Stats.Total++
		e, ok := snap.Lookup(a.Symbol)
		if ok && catalog.ValidateAddress(e.Network, e.Address) {
			report.Stats.WithAddresses++
			continue
		}
		report.Stats.MissingAddresses++
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%s: enabled asset has no usable deposit address", a.Symbol))
	}
	report.Stats.Configured = snap.Len()

	report.Valid = len(report.Errors) == 0
	return report
}
