package domain

// Category groups assets for listing.
type Category string

const (
	CategoryLayer1     Category = "layer1"
	CategoryLayer2     Category = "layer2"
	CategoryStablecoin Category = "stablecoin"
	CategoryDeFi       Category = "defi"
	CategoryMeme       Category = "meme"
	CategoryOther      Category = "other"
)

// AssetType distinguishes EVM tokens from everything else.
type AssetType string

const (
	AssetTypeEVM    AssetType = "EvmToken"
	AssetTypeNonEVM AssetType = "NonEvmToken"
)

// Asset is static metadata about a transferable asset.
type Asset struct {
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Network     Network   `json:"network"`
	ChainID     ChainID   `json:"chainId,omitempty"`
	Category    Category  `json:"category"`
	Decimals    int       `json:"decimals"`
	Enabled     bool      `json:"enabled"`
	Featured    bool      `json:"featured"`
	Popularity  int       `json:"popularity"`
	SortOrder   int       `json:"sortOrder"`
	Type        AssetType `json:"type"`
}

// AssetListing pairs an asset with its resolved deposit address, if any.
type AssetListing struct {
	Asset
	Deposit *DepositAddress `json:"deposit,omitempty"`
}
