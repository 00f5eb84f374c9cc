package registry

import "github.com/vietddude/ramp/internal/core/domain"

// FallbackEVMAddress is a shared EOA used for ERC-20 assets that have no
// dedicated custodial wallet. Entries pointing at it are placeholders.
const FallbackEVMAddress = "0x9D5025B327E6B863E5050141C987d988c07fd8B2"

// StaticEntry is one row of the built-in deposit address table.
type StaticEntry struct {
	Symbol      string
	Network     domain.Network
	Address     string
	Memo        string
	Placeholder bool
}

// StaticAddresses is the authoritative built-in address table.
var StaticAddresses = []StaticEntry{
	// EVM
	{Symbol: "ETH", Network: domain.NetworkEthereum, Address: "0xa22d566f52b303049d27a7169ed17a925b3fdb5e"},
	{Symbol: "AVAX", Network: domain.NetworkAvalanche, Address: "0x2063115a37f55c19cA60b9d1eca2378De00CD79b"},
	{Symbol: "ETC", Network: domain.NetworkEthereumClassic, Address: "0x269285683a921dbce6fcb21513b06998f8fbbc99"},
	{Symbol: "ARB", Network: domain.NetworkArbitrum, Address: "0x6931a51e15763C4d8da468cbF7C51323d96F2e80"},
	{Symbol: "OP", Network: domain.NetworkOptimism, Address: "0xE006aBC90950DB9a81A3812502D0b031FaAf28D8"},
	{Symbol: "ZORA", Network: domain.NetworkZora, Address: "0x407506929b5C58992987609539a1D424f2305Cc3"},
	{Symbol: "MATIC", Network: domain.NetworkPolygon, Address: "0x11362ec5cc119448225abbbb1c9c67e22e776cdd"},
	{Symbol: "USDC", Network: domain.NetworkEthereum, Address: "0xd71a079cb64480334ffb400f017a0dde94f553dd"},
	{Symbol: "AAVE", Network: domain.NetworkEthereum, Address: "0x0788702c7d70914f34b82fb6ad0b405263a00486"},
	{Symbol: "LINK", Network: domain.NetworkEthereum, Address: "0xcf26c0f23e566b42251bc0cf680c8999def1d7f0"},
	{Symbol: "COMP", Network: domain.NetworkEthereum, Address: "0x944bff154f0486b6c834c5607978b45ffc264902"},
	{Symbol: "CRV", Network: domain.NetworkEthereum, Address: "0xe2efa30cca6b06e4436c0f25f2d0409407ac3a4d"},
	{Symbol: "UNI", Network: domain.NetworkEthereum, Address: "0x396b24e9137befef326af9fdba92d95dd124d5d4"},
	{Symbol: "ONDO", Network: domain.NetworkEthereum, Address: "0x894f85323110a0a8883b22b18f26864882c3c63e"},
	{Symbol: "SHIB", Network: domain.NetworkEthereum, Address: "0x263dcd3e749b1f00c3998b5a0f14e3255658803b"},
	{Symbol: "PEPE", Network: domain.NetworkEthereum, Address: FallbackEVMAddress},
	{Symbol: "FLOKI", Network: domain.NetworkEthereum, Address: FallbackEVMAddress},
	{Symbol: "TRUMP", Network: domain.NetworkEthereum, Address: FallbackEVMAddress},
	{Symbol: "VIRTUAL", Network: domain.NetworkEthereum, Address: FallbackEVMAddress},
	{Symbol: "WLFI", Network: domain.NetworkEthereum, Address: FallbackEVMAddress},

	// Bitcoin-like
	{Symbol: "BTC", Network: domain.NetworkBitcoin, Address: "3NJ48qerB4sWE8qEF1bRzk7jXKh8AJnbBC"},
	{Symbol: "LTC", Network: domain.NetworkLitecoin, Address: "MQNay3B5gRq4o7nHuTJf9LpFkDmxhmockK"},
	{Symbol: "BCH", Network: domain.NetworkBitcoinCash, Address: "qqqg0e4qs9h6j6z8t53kwmjukwksmkzphvtsfv3j2q"},
	{Symbol: "DOGE", Network: domain.NetworkDogecoin, Address: "DUGnpFtJGnmmGzFMBoEgSw5nPgRfSzYHF7"},

	// Other L1
	{Symbol: "SOL", Network: domain.NetworkSolana, Address: "DPsUYCziRFjW8dcvitvtrJJfxbPUb1X7Ty8ybn3hRwM1"},
	{Symbol: "ADA", Network: domain.NetworkCardano, Address: "addr1vydgw0ruk6q78vl0f26q6zxtssfnh2thxzgqvvthe8je56crgtapt"},
	{Symbol: "XTZ", Network: domain.NetworkTezos, Address: "tz1P4FJEdVTEEG5TRREFavjQthzsJuESiCRV"},
	{Symbol: "SUI", Network: domain.NetworkSui, Address: "0xfb44ad61588e5094d617851c759e35dc72720267b5464eb95284c6d5a1945ce2"},

	// Memo networks
	{Symbol: "XLM", Network: domain.NetworkStellar, Address: "GB4SJVA7KAFDZJFVTSEV2YWZZA3VEANHHK3WSJRHO2XS2GDYJCGWKDB5", Memo: "1380611530"},
	{Symbol: "XRP", Network: domain.NetworkXRP, Address: "rn7d8bZhsdz9ecf586XsvbmVePfxYGrs34", Memo: "2237695492"},
	{Symbol: "HBAR", Network: domain.NetworkHedera, Address: "0.0.5006230", Memo: "904278439"},

	// Solana tokens
	{Symbol: "BONK", Network: domain.NetworkSolana, Address: "puNRXZc4qEYWdUjmx68Lcb87DobBpgZQPdTndoS4U5B"},
	{Symbol: "MOODENG", Network: domain.NetworkSolana, Address: "Fd4ir2iU6H8kaYvTbAwXmrdjo6JPt7ABo7b5poCTpAsE"},
}
