package catalog

import (
	"slices"
	"strings"

	"github.com/vietddude/ramp/internal/core/domain"
)

// compatible lists the asset symbols Robinhood will move over each network.
var compatible = map[domain.Network][]string{
	domain.NetworkEthereum: {
		"ETH", "USDC", "USDT", "AAVE", "LINK", "COMP", "CRV", "FLOKI",
		"ONDO", "PEPE", "SHIB", "UNI", "WLFI",
	},
	domain.NetworkEthereumClassic: {"ETC"},
	domain.NetworkAvalanche:       {"AVAX", "USDC"},

	domain.NetworkPolygon:  {"MATIC", "USDC", "USDT"},
	domain.NetworkArbitrum: {"ARB", "USDC"},
	domain.NetworkOptimism: {"OP", "USDC"},
	domain.NetworkBase:     {"USDC"},
	domain.NetworkZora:     {"ZORA"},

	domain.NetworkBitcoin:     {"BTC"},
	domain.NetworkBitcoinCash: {"BCH"},
	domain.NetworkLitecoin:    {"LTC"},
	domain.NetworkDogecoin:    {"DOGE"},

	domain.NetworkSolana: {
		"SOL", "USDC", "BONK", "MEW", "WIF", "MOODENG", "TRUMP", "PNUT", "POPCAT", "PENGU",
	},
	domain.NetworkCardano: {"ADA"},
	domain.NetworkTezos:   {"XTZ"},
	domain.NetworkSui:     {"SUI"},
	domain.NetworkToncoin: {"TON"},

	domain.NetworkStellar: {"XLM"},
	domain.NetworkXRP:     {"XRP"},
	domain.NetworkHedera:  {"HBAR"},
}

// CompatibleAssets returns the symbols transferable on a network.
func CompatibleAssets(network domain.Network) []string {
	return slices.Clone(compatible[network])
}

// IsCompatible reports whether symbol can be moved over network.
func IsCompatible(network domain.Network, symbol string) bool {
	return slices.Contains(compatible[network], strings.ToUpper(symbol))
}
