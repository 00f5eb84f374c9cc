package urlbuilder

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vietddude/ramp/internal/catalog"
	"github.com/vietddude/ramp/internal/core/domain"
)

// MaxCallbackAmount caps amounts echoed back from a Robinhood redirect.
var MaxCallbackAmount = decimal.NewFromInt(1_000_000)

// Callback is the sanitised query of a Robinhood redirect.
type Callback struct {
	AssetCode   string         `json:"assetCode"`
	AssetAmount string         `json:"assetAmount,omitempty"`
	Network     domain.Network `json:"network"`
}

// SanitizeCallback validates the three values Robinhood appends to the
// redirect URL. Anything else on the query is ignored by the caller.
func SanitizeCallback(assetCode, assetAmount, network string) (Callback, error) {
	return sanitizeCallback(assetCode, assetAmount, network, true)
}

// SanitizeTransferCallback validates the redirect of an onramp transfer we
// built ourselves. That query carries the asset and network but may lack an
// amount, which is still checked when present.
func SanitizeTransferCallback(assetCode, assetAmount, network string) (Callback, error) {
	return sanitizeCallback(assetCode, assetAmount, network, false)
}

func sanitizeCallback(assetCode, assetAmount, network string, amountRequired bool) (Callback, error) {
	assetCode = strings.TrimSpace(assetCode)
	assetAmount = strings.TrimSpace(assetAmount)
	network = strings.TrimSpace(network)

	if assetCode == "" || network == "" {
		return Callback{}, domain.Invalid("callback", "assetCode and network are required")
	}
	if assetAmount == "" && amountRequired {
		return Callback{}, domain.Invalid("callback", "assetCode, assetAmount and network are required")
	}
	if !catalog.IsValidAssetCode(assetCode) {
		return Callback{}, domain.Invalid("assetCode", "Invalid asset code: %s", assetCode)
	}
	if assetAmount != "" {
		amount, ok := catalog.ParseAmount(assetAmount)
		if !ok {
			return Callback{}, domain.Invalid("assetAmount", "Invalid asset amount: %s", assetAmount)
		}
		if amount.GreaterThan(MaxCallbackAmount) {
			return Callback{}, domain.Invalid("assetAmount", "asset amount exceeds %s", MaxCallbackAmount)
		}
	}
	if !catalog.IsValidNetworkCode(network) {
		return Callback{}, domain.Invalid("network", "Invalid network: %s", network)
	}

	return Callback{
		AssetCode:   assetCode,
		AssetAmount: assetAmount,
		Network:     domain.Network(network),
	}, nil
}
