package urlbuilder

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vietddude/ramp/internal/catalog"
	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/metrics"
)

// PreselectedParams pins the onramp flow to one asset on one network.
type PreselectedParams struct {
	Asset       string `json:"selectedAsset"`
	Network     string `json:"selectedNetwork"`
	AssetAmount string `json:"assetAmount,omitempty"`
}

// BuildPreselectedURL builds an onramp link for a transfer into our deposit
// address for the asset. The address is exchanged for a connect id first;
// if that fails no URL is produced.
func (b *Builder) BuildPreselectedURL(ctx context.Context, p PreselectedParams) (TransferURL, error) {
	asset := strings.ToUpper(strings.TrimSpace(p.Asset))
	network := domain.Network(strings.ToUpper(strings.TrimSpace(p.Network)))

	if asset == "" || network == "" {
		return TransferURL{}, domain.Invalid("selectedAsset", "Asset and network selection required for external wallet transfers")
	}
	if !catalog.IsSupportedNetwork(string(network)) {
		return TransferURL{}, domain.Invalid("selectedNetwork", "Invalid networks: %s", network)
	}
	if !catalog.IsValidAssetCode(asset) {
		return TransferURL{}, domain.Invalid("selectedAsset", "Invalid asset code: %s", asset)
	}
	if p.AssetAmount != "" && !catalog.IsValidAmount(p.AssetAmount) {
		return TransferURL{}, domain.Invalid("assetAmount", "Invalid asset amount: %s", p.AssetAmount)
	}
	if b.resolver == nil || b.issuer == nil {
		return TransferURL{}, errors.New("onramp builder is missing a resolver or connect id issuer")
	}

	deposit, err := b.resolver.Resolve(asset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return TransferURL{}, domain.Invalid("selectedAsset", "Asset configuration not found for: %s", asset)
		}
		return TransferURL{}, err
	}
	// An EVM address receives on every EVM chain; anything else must be
	// registered on the requested network itself.
	if deposit.Network != network && !(catalog.IsEVM(deposit.Network) && catalog.IsEVM(network)) {
		return TransferURL{}, domain.Invalid("selectedNetwork",
			"%s deposit address is registered on %s, not %s", asset, deposit.Network, network)
	}
	if !catalog.ValidateAddress(network, deposit.Address) {
		return TransferURL{}, domain.Invalid("selectedNetwork",
			"Invalid wallet address format for network %s: %s", network, deposit.Address)
	}
	if !catalog.IsCompatible(network, asset) {
		return TransferURL{}, domain.Invalid("selectedNetwork", "%s cannot be transferred on %s", asset, network)
	}

	now := b.now()
	connectID, err := b.issuer.CreateConnectID(ctx, deposit.Address, fmt.Sprintf("user_%d", now.UnixMilli()))
	if err != nil {
		return TransferURL{}, fmt.Errorf("create connect id: %w", err)
	}

	redirect := url.Values{}
	redirect.Set("asset", asset)
	redirect.Set("network", string(network))
	redirect.Set("connectId", connectID)
	redirect.Set("timestamp", strconv.FormatInt(now.UnixMilli(), 10))

	params := map[string]string{
		"applicationId":     b.applicationID,
		"connectId":         connectID,
		"paymentMethod":     "crypto_balance",
		"redirectUrl":       b.CallbackURL() + "?" + redirect.Encode(),
		"supportedAssets":   asset,
		"supportedNetworks": string(network),
		"walletAddress":     deposit.Address,
		"assetCode":         asset,
		"flow":              "transfer",
	}
	if p.AssetAmount != "" {
		params["assetAmount"] = p.AssetAmount
	}

	metrics.URLsBuilt.WithLabelValues("onramp").Inc()
	b.log.Info("Built onramp URL", "asset", asset, "network", network, "connectId", connectID)

	return TransferURL{
		URL:       encode(OnrampBaseURL, params),
		ConnectID: connectID,
		Params: map[string]string{
			"asset":         asset,
			"network":       string(network),
			"walletAddress": deposit.Address,
		},
	}, nil
}
