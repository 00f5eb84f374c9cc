package domain

import (
	"time"
)

// AddressSource records where a deposit address came from.
type AddressSource string

const (
	SourceStatic          AddressSource = "static"
	SourceDynamicPrimary  AddressSource = "dynamic_primary"
	SourceDynamicFallback AddressSource = "dynamic_fallback"
)

// Rank orders sources by priority. Higher wins when merging.
func (s AddressSource) Rank() int {
	switch s {
	case SourceDynamicPrimary:
		return 2
	case SourceDynamicFallback:
		return 1
	default:
		return 0
	}
}

// WalletType is the custodial wallet kind behind an address.
type WalletType string

const (
	WalletTypeTrading        WalletType = "Trading"
	WalletTypeTradingBalance WalletType = "Trading Balance"
	WalletTypeOther          WalletType = "Other"
	WalletTypeStatic         WalletType = "Static"
	WalletTypeOTC            WalletType = "OTC"
)

// DepositAddress is a resolved custodial deposit address bound to one asset.
type DepositAddress struct {
	Symbol     string        `json:"symbol"`
	Network    Network       `json:"network"`
	Address    string        `json:"address"`
	Memo       string        `json:"memo,omitempty"`
	Source     AddressSource `json:"source"`
	WalletType WalletType    `json:"walletType"`
	WalletID   string        `json:"walletId,omitempty"`
}

// DynamicAddress is a deposit address returned by a wallet provider lookup.
type DynamicAddress struct {
	Address    string
	Memo       string
	WalletType WalletType
	WalletID   string
}

// Source maps the wallet type onto the merge priority.
func (d DynamicAddress) Source() AddressSource {
	if d.WalletType == WalletTypeTrading {
		return SourceDynamicPrimary
	}
	return SourceDynamicFallback
}

// FetchStats describes one wallet provider lookup.
type FetchStats struct {
	WalletsFetched   int                `json:"totalWalletsFetched"`
	AddressesMatched int                `json:"addressesMatched"`
	WalletTypes      map[WalletType]int `json:"walletTypeDistribution"`
	FetchedAt        time.Time          `json:"fetchedAt"`
}
