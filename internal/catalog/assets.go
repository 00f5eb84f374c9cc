package catalog

import (
	"sort"
	"strings"

	"github.com/vietddude/ramp/internal/core/domain"
)

func evmAsset(a domain.Asset) domain.Asset {
	a.ChainID = domain.NetworkToChainID[a.Network]
	a.Type = domain.AssetTypeEVM
	return a
}

func nonEVMAsset(a domain.Asset) domain.Asset {
	a.Type = domain.AssetTypeNonEVM
	return a
}

// assets is the metadata table. Disabled entries are listed but never offered.
var assets = []domain.Asset{
	evmAsset(domain.Asset{
		Symbol: "ETH", Name: "Ethereum", Description: "Smart contract platform and cryptocurrency",
		Network: domain.NetworkEthereum, Category: domain.CategoryLayer1, Decimals: 18,
		Enabled: true, Featured: true, Popularity: 100, SortOrder: 2,
	}),
	evmAsset(domain.Asset{
		Symbol: "AVAX", Name: "Avalanche", Description: "Fast, low-cost blockchain platform",
		Network: domain.NetworkAvalanche, Category: domain.CategoryLayer1, Decimals: 18,
		Enabled: true, Popularity: 70, SortOrder: 10,
	}),
	evmAsset(domain.Asset{
		Symbol: "ETC", Name: "Ethereum Classic", Description: "Original Ethereum blockchain",
		Network: domain.NetworkEthereumClassic, Category: domain.CategoryLayer1, Decimals: 18,
		Enabled: true, Popularity: 40, SortOrder: 14,
	}),
	evmAsset(domain.Asset{
		Symbol: "MATIC", Name: "Polygon", Description: "Ethereum scaling solution",
		Network: domain.NetworkPolygon, Category: domain.CategoryLayer2, Decimals: 18,
		Enabled: false, Popularity: 75, SortOrder: 11,
	}),
	evmAsset(domain.Asset{
		Symbol: "USDC", Name: "USD Coin", Description: "US Dollar stablecoin",
		Network: domain.NetworkEthereum, Category: domain.CategoryStablecoin, Decimals: 6,
		Enabled: true, Featured: true, Popularity: 95, SortOrder: 4,
	}),
	evmAsset(domain.Asset{
		Symbol: "AAVE", Name: "Aave", Description: "DeFi lending protocol token",
		Network: domain.NetworkEthereum, Category: domain.CategoryDeFi, Decimals: 18,
		Enabled: true, Popularity: 60, SortOrder: 20,
	}),
	evmAsset(domain.Asset{
		Symbol: "UNI", Name: "Uniswap", Description: "Decentralized exchange token",
		Network: domain.NetworkEthereum, Category: domain.CategoryDeFi, Decimals: 18,
		Enabled: true, Popularity: 65, SortOrder: 21,
	}),
	evmAsset(domain.Asset{
		Symbol: "LINK", Name: "Chainlink", Description: "Decentralized oracle network",
		Network: domain.NetworkEthereum, Category: domain.CategoryDeFi, Decimals: 18,
		Enabled: true, Popularity: 68, SortOrder: 22,
	}),
	evmAsset(domain.Asset{
		Symbol: "COMP", Name: "Compound", Description: "DeFi lending protocol token",
		Network: domain.NetworkEthereum, Category: domain.CategoryDeFi, Decimals: 18,
		Enabled: true, Popularity: 55, SortOrder: 23,
	}),
	evmAsset(domain.Asset{
		Symbol: "CRV", Name: "Curve DAO", Description: "DeFi stablecoin exchange token",
		Network: domain.NetworkEthereum, Category: domain.CategoryDeFi, Decimals: 18,
		Enabled: true, Popularity: 50, SortOrder: 24,
	}),
	evmAsset(domain.Asset{
		Symbol: "ONDO", Name: "Ondo", Description: "Institutional-grade DeFi protocol",
		Network: domain.NetworkEthereum, Category: domain.CategoryDeFi, Decimals: 18,
		Enabled: true, Popularity: 45, SortOrder: 25,
	}),
	evmAsset(domain.Asset{
		Symbol: "SHIB", Name: "Shiba Inu", Description: "Ethereum-based meme token",
		Network: domain.NetworkEthereum, Category: domain.CategoryMeme, Decimals: 18,
		Enabled: true, Popularity: 72, SortOrder: 31,
	}),
	evmAsset(domain.Asset{
		Symbol: "PEPE", Name: "Pepecoin", Description: "Internet meme cryptocurrency",
		Network: domain.NetworkEthereum, Category: domain.CategoryMeme, Decimals: 18,
		Enabled: true, Popularity: 60, SortOrder: 32,
	}),
	evmAsset(domain.Asset{
		Symbol: "FLOKI", Name: "Floki", Description: "Community-driven meme token",
		Network: domain.NetworkEthereum, Category: domain.CategoryMeme, Decimals: 9,
		Enabled: true, Popularity: 55, SortOrder: 33,
	}),
	evmAsset(domain.Asset{
		Symbol: "TRUMP", Name: "OFFICIAL TRUMP", Description: "Political-themed cryptocurrency",
		Network: domain.NetworkEthereum, Category: domain.CategoryOther, Decimals: 18,
		Enabled: true, Popularity: 50, SortOrder: 40,
	}),
	evmAsset(domain.Asset{
		Symbol: "VIRTUAL", Name: "Virtuals Protocol", Description: "Virtual reality protocol token",
		Network: domain.NetworkEthereum, Category: domain.CategoryOther, Decimals: 18,
		Enabled: true, Popularity: 45, SortOrder: 41,
	}),
	evmAsset(domain.Asset{
		Symbol: "WLFI", Name: "World Liberty Financial", Description: "DeFi financial protocol",
		Network: domain.NetworkEthereum, Category: domain.CategoryOther, Decimals: 18,
		Enabled: true, Popularity: 40, SortOrder: 42,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "BTC", Name: "Bitcoin", Description: "The original cryptocurrency and store of value",
		Network: domain.NetworkBitcoin, Category: domain.CategoryLayer1, Decimals: 8,
		Enabled: true, Featured: true, Popularity: 100, SortOrder: 1,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "SOL", Name: "Solana", Description: "High-performance blockchain for dApps",
		Network: domain.NetworkSolana, Category: domain.CategoryLayer1, Decimals: 9,
		Enabled: true, Featured: true, Popularity: 90, SortOrder: 3,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "LTC", Name: "Litecoin", Description: "Peer-to-peer cryptocurrency",
		Network: domain.NetworkLitecoin, Category: domain.CategoryLayer1, Decimals: 8,
		Enabled: true, Popularity: 60, SortOrder: 12,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "BCH", Name: "Bitcoin Cash", Description: "Bitcoin fork with larger blocks",
		Network: domain.NetworkBitcoinCash, Category: domain.CategoryLayer1, Decimals: 8,
		Enabled: true, Popularity: 50, SortOrder: 13,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "DOGE", Name: "Dogecoin", Description: "Original meme cryptocurrency",
		Network: domain.NetworkDogecoin, Category: domain.CategoryMeme, Decimals: 8,
		Enabled: true, Popularity: 75, SortOrder: 30,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "ADA", Name: "Cardano", Description: "Proof-of-stake blockchain platform",
		Network: domain.NetworkCardano, Category: domain.CategoryLayer1, Decimals: 6,
		Enabled: false, Popularity: 65, SortOrder: 15,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "XTZ", Name: "Tezos", Description: "Self-amending blockchain platform",
		Network: domain.NetworkTezos, Category: domain.CategoryLayer1, Decimals: 6,
		Enabled: true, Popularity: 45, SortOrder: 16,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "XLM", Name: "Stellar", Description: "Fast, low-cost payment network",
		Network: domain.NetworkStellar, Category: domain.CategoryLayer1, Decimals: 7,
		Enabled: true, Popularity: 55, SortOrder: 15,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "SUI", Name: "Sui", Description: "Next-generation smart contract platform",
		Network: domain.NetworkSui, Category: domain.CategoryLayer1, Decimals: 9,
		Enabled: false, Popularity: 50, SortOrder: 17,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "XRP", Name: "Ripple", Description: "Digital payment network and protocol",
		Network: domain.NetworkXRP, Category: domain.CategoryLayer1, Decimals: 6,
		Enabled: false, Popularity: 70, SortOrder: 18,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "HBAR", Name: "Hedera", Description: "Enterprise-grade distributed ledger",
		Network: domain.NetworkHedera, Category: domain.CategoryLayer1, Decimals: 8,
		Enabled: false, Popularity: 48, SortOrder: 19,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "BONK", Name: "BONK", Description: "Solana-based community meme token",
		Network: domain.NetworkSolana, Category: domain.CategoryMeme, Decimals: 5,
		Enabled: true, Popularity: 65, SortOrder: 34,
	}),
	nonEVMAsset(domain.Asset{
		Symbol: "MOODENG", Name: "Moo Deng", Description: "Viral Solana meme token",
		Network: domain.NetworkSolana, Category: domain.CategoryMeme, Decimals: 9,
		Enabled: true, Popularity: 55, SortOrder: 35,
	}),
}

var assetIndex = func() map[string]domain.Asset {
	idx := make(map[string]domain.Asset, len(assets))
	for _, a := range assets {
		idx[a.Symbol] = a
	}
	return idx
}()

// SortAssets orders by SortOrder, breaking ties by symbol.
func SortAssets(list []domain.Asset) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].SortOrder != list[j].SortOrder {
			return list[i].SortOrder < list[j].SortOrder
		}
		return list[i].Symbol < list[j].Symbol
	})
}

// SortByPopularity orders by popularity descending, breaking ties by symbol.
func SortByPopularity(list []domain.Asset) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Popularity != list[j].Popularity {
			return list[i].Popularity > list[j].Popularity
		}
		return list[i].Symbol < list[j].Symbol
	})
}

// Assets returns a copy of the metadata table in listing order.
func Assets() []domain.Asset {
	out := make([]domain.Asset, len(assets))
	copy(out, assets)
	SortAssets(out)
	return out
}

// FindAsset looks up metadata by symbol, case-insensitively.
func FindAsset(symbol string) (domain.Asset, bool) {
	a, ok := assetIndex[strings.ToUpper(strings.TrimSpace(symbol))]
	return a, ok
}

// SearchAssets matches query against symbol and name, case-insensitively.
// An empty query matches everything.
func SearchAssets(query string) []domain.Asset {
	q := strings.ToLower(strings.TrimSpace(query))
	return filterAssets(func(a domain.Asset) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(a.Symbol), q) ||
			strings.Contains(strings.ToLower(a.Name), q)
	})
}

// AssetsByCategory returns assets in one category.
func AssetsByCategory(c domain.Category) []domain.Asset {
	return filterAssets(func(a domain.Asset) bool { return a.Category == c })
}

// AssetsByNetwork returns assets whose home network is n.
func AssetsByNetwork(n domain.Network) []domain.Asset {
	return filterAssets(func(a domain.Asset) bool { return a.Network == n })
}

// FeaturedAssets returns enabled featured assets, most popular first.
func FeaturedAssets() []domain.Asset {
	out := filterAssets(func(a domain.Asset) bool { return a.Enabled && a.Featured })
	SortByPopularity(out)
	return out
}

func filterAssets(keep func(domain.Asset) bool) []domain.Asset {
	var out []domain.Asset
	for _, a := range Assets() {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
