package domain

// Network is a blockchain network code as used by Robinhood Connect.
type Network string

const (
	NetworkArbitrum        Network = "ARBITRUM"
	NetworkAvalanche       Network = "AVALANCHE"
	NetworkBase            Network = "BASE"
	NetworkBitcoin         Network = "BITCOIN"
	NetworkBitcoinCash     Network = "BITCOIN_CASH"
	NetworkCardano         Network = "CARDANO"
	NetworkDogecoin        Network = "DOGECOIN"
	NetworkEthereum        Network = "ETHEREUM"
	NetworkEthereumClassic Network = "ETHEREUM_CLASSIC"
	NetworkHedera          Network = "HEDERA"
	NetworkLitecoin        Network = "LITECOIN"
	NetworkOptimism        Network = "OPTIMISM"
	NetworkPolygon         Network = "POLYGON"
	NetworkSolana          Network = "SOLANA"
	NetworkStellar         Network = "STELLAR"
	NetworkSui             Network = "SUI"
	NetworkTezos           Network = "TEZOS"
	NetworkToncoin         Network = "TONCOIN"
	NetworkXRP             Network = "XRP"
	NetworkZora            Network = "ZORA"
)

// ChainID is an EVM chain id. Zero means the network is not EVM.
type ChainID uint64

const (
	ChainIDEthereum        ChainID = 1
	ChainIDOptimism        ChainID = 10
	ChainIDEthereumClassic ChainID = 61
	ChainIDPolygon         ChainID = 137
	ChainIDBase            ChainID = 8453
	ChainIDArbitrum        ChainID = 42161
	ChainIDAvalanche       ChainID = 43114
	ChainIDZora            ChainID = 7777777
)

// NetworkToChainID maps EVM networks to their chain id.
var NetworkToChainID = map[Network]ChainID{
	NetworkEthereum:        ChainIDEthereum,
	NetworkOptimism:        ChainIDOptimism,
	NetworkEthereumClassic: ChainIDEthereumClassic,
	NetworkPolygon:         ChainIDPolygon,
	NetworkBase:            ChainIDBase,
	NetworkArbitrum:        ChainIDArbitrum,
	NetworkAvalanche:       ChainIDAvalanche,
	NetworkZora:            ChainIDZora,
}

// ChainIDToNetwork is the reverse of NetworkToChainID.
var ChainIDToNetwork = map[ChainID]Network{
	ChainIDEthereum:        NetworkEthereum,
	ChainIDOptimism:        NetworkOptimism,
	ChainIDEthereumClassic: NetworkEthereumClassic,
	ChainIDPolygon:         NetworkPolygon,
	ChainIDBase:            NetworkBase,
	ChainIDArbitrum:        NetworkArbitrum,
	ChainIDAvalanche:       NetworkAvalanche,
	ChainIDZora:            NetworkZora,
}
