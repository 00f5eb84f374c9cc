package catalog

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/vietddude/ramp/internal/core/domain"
)

var (
	assetCodePattern   = regexp.MustCompile(`^[A-Z]{2,10}$`)
	networkCodePattern = regexp.MustCompile(`^[A-Z_]+$`)
	amountPattern      = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// ValidateAddress checks an address against the network's format rule.
// Unknown networks and empty addresses are invalid.
func ValidateAddress(network domain.Network, address string) bool {
	if address == "" {
		return false
	}
	info, ok := networks[network]
	if !ok {
		return false
	}
	return info.validate(address)
}

// ChecksumMismatch reports a mixed-case EVM address whose casing does not
// match its EIP-55 checksum. All-lowercase and all-uppercase addresses carry
// no checksum and never mismatch.
func ChecksumMismatch(network domain.Network, address string) bool {
	if !IsEVM(network) || !isEVMAddress(address) {
		return false
	}
	hex := address[2:]
	if hex == strings.ToLower(hex) || hex == strings.ToUpper(hex) {
		return false
	}
	return common.HexToAddress(address).Hex() != address
}

// RequiresMemo reports whether deposits on the network need a memo or tag.
func RequiresMemo(network domain.Network) bool {
	return networks[network].MemoRequired
}

// IsSupportedNetwork reports whether code names a catalog network.
func IsSupportedNetwork(code string) bool {
	_, ok := networks[domain.Network(code)]
	return ok
}

// IsConnectSupported reports whether Robinhood Connect accepts the network.
func IsConnectSupported(network domain.Network) bool {
	return networks[network].ConnectSupported
}

// IsValidNetworkCode checks the shape of a network code without requiring
// it to be known.
func IsValidNetworkCode(code string) bool {
	return networkCodePattern.MatchString(code)
}

// IsValidAssetCode accepts 2 to 10 uppercase letters.
func IsValidAssetCode(code string) bool {
	return assetCodePattern.MatchString(code)
}

// ParseAmount parses a plain positive decimal such as "1" or "0.25".
// Signs, exponents and separators are rejected.
func ParseAmount(s string) (decimal.Decimal, bool) {
	if !amountPattern.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// IsValidAmount is ParseAmount without the value.
func IsValidAmount(s string) bool {
	_, ok := ParseAmount(s)
	return ok
}
