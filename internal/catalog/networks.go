// Package catalog holds the static network and asset tables and the pure
// validators built on them.
package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vietddude/ramp/internal/core/domain"
)

// NetworkInfo describes one supported network.
type NetworkInfo struct {
	Network          domain.Network `json:"network"`
	DisplayName      string         `json:"displayName"`
	ChainID          domain.ChainID `json:"chainId,omitempty"`
	EVM              bool           `json:"evm"`
	MemoRequired     bool           `json:"memoRequired"`
	ConnectSupported bool           `json:"connectSupported"`

	validate func(string) bool
}

var (
	hederaPattern = regexp.MustCompile(`^0\.0\.\d+$`)
	suiPattern    = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
)

func lengthBetween(min, max int) func(string) bool {
	return func(a string) bool {
		return len(a) >= min && len(a) <= max
	}
}

func prefixed(prefix string, min, max int) func(string) bool {
	inRange := lengthBetween(min, max)
	return func(a string) bool {
		return strings.HasPrefix(a, prefix) && inRange(a)
	}
}

// isEVMAddress accepts exactly "0x" followed by 40 hex characters.
// common.IsHexAddress alone also accepts "0X" and unprefixed input.
func isEVMAddress(a string) bool {
	return strings.HasPrefix(a, "0x") && common.IsHexAddress(a)
}

func evm(network domain.Network, name string, connect bool) NetworkInfo {
	return NetworkInfo{
		Network:          network,
		DisplayName:      name,
		ChainID:          domain.NetworkToChainID[network],
		EVM:              true,
		ConnectSupported: connect,
		validate:         isEVMAddress,
	}
}

var networks = map[domain.Network]NetworkInfo{
	domain.NetworkEthereum:        evm(domain.NetworkEthereum, "Ethereum", true),
	domain.NetworkPolygon:         evm(domain.NetworkPolygon, "Polygon", true),
	domain.NetworkArbitrum:        evm(domain.NetworkArbitrum, "Arbitrum", false),
	domain.NetworkOptimism:        evm(domain.NetworkOptimism, "Optimism", false),
	domain.NetworkBase:            evm(domain.NetworkBase, "Base", false),
	domain.NetworkZora:            evm(domain.NetworkZora, "Zora", false),
	domain.NetworkAvalanche:       evm(domain.NetworkAvalanche, "Avalanche", true),
	domain.NetworkEthereumClassic: evm(domain.NetworkEthereumClassic, "Ethereum Classic", true),

	domain.NetworkBitcoin: {
		Network: domain.NetworkBitcoin, DisplayName: "Bitcoin", ConnectSupported: true,
		validate: lengthBetween(26, 62),
	},
	domain.NetworkLitecoin: {
		Network: domain.NetworkLitecoin, DisplayName: "Litecoin", ConnectSupported: true,
		validate: lengthBetween(26, 62),
	},
	domain.NetworkBitcoinCash: {
		Network: domain.NetworkBitcoinCash, DisplayName: "Bitcoin Cash", ConnectSupported: true,
		validate: lengthBetween(26, 62),
	},
	domain.NetworkDogecoin: {
		Network: domain.NetworkDogecoin, DisplayName: "Dogecoin", ConnectSupported: true,
		validate: prefixed("D", 26, 34),
	},
	domain.NetworkSolana: {
		Network: domain.NetworkSolana, DisplayName: "Solana", ConnectSupported: true,
		validate: lengthBetween(32, 44),
	},
	domain.NetworkCardano: {
		Network: domain.NetworkCardano, DisplayName: "Cardano",
		validate: lengthBetween(30, 110),
	},
	domain.NetworkTezos: {
		Network: domain.NetworkTezos, DisplayName: "Tezos", ConnectSupported: true,
		validate: prefixed("tz", 30, 40),
	},
	domain.NetworkSui: {
		Network: domain.NetworkSui, DisplayName: "Sui",
		validate: suiPattern.MatchString,
	},
	domain.NetworkToncoin: {
		Network: domain.NetworkToncoin, DisplayName: "Toncoin",
		validate: lengthBetween(30, 60),
	},
	domain.NetworkStellar: {
		Network: domain.NetworkStellar, DisplayName: "Stellar", MemoRequired: true, ConnectSupported: true,
		validate: prefixed("G", 56, 56),
	},
	domain.NetworkXRP: {
		Network: domain.NetworkXRP, DisplayName: "XRP", MemoRequired: true,
		validate: prefixed("r", 25, 35),
	},
	domain.NetworkHedera: {
		Network: domain.NetworkHedera, DisplayName: "Hedera", MemoRequired: true,
		validate: hederaPattern.MatchString,
	},
}

// Lookup returns the catalog entry for a network.
func Lookup(network domain.Network) (NetworkInfo, bool) {
	info, ok := networks[network]
	return info, ok
}

// Networks returns every catalog entry sorted by network code.
func Networks() []NetworkInfo {
	out := make([]NetworkInfo, 0, len(networks))
	for _, info := range networks {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Network < out[j].Network })
	return out
}

// ConnectNetworks returns the networks Robinhood Connect accepts, sorted.
func ConnectNetworks() []domain.Network {
	var out []domain.Network
	for _, info := range Networks() {
		if info.ConnectSupported {
			out = append(out, info.Network)
		}
	}
	return out
}

// ChainID returns the EVM chain id of a network, or zero.
func ChainID(network domain.Network) domain.ChainID {
	return networks[network].ChainID
}

// IsEVM reports whether the network uses 0x-style addresses.
func IsEVM(network domain.Network) bool {
	return networks[network].EVM
}
