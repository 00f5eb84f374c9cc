package urlbuilder

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/vietddude/ramp/internal/catalog"
	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/metrics"
)

// TransferParams are the caller inputs of an offramp link.
type TransferParams struct {
	SupportedNetworks []string `json:"supportedNetworks"`
	AssetCode         string   `json:"assetCode,omitempty"`
	AssetAmount       string   `json:"assetAmount,omitempty"`
	FiatCode          string   `json:"fiatCode,omitempty"`
	FiatAmount        string   `json:"fiatAmount,omitempty"`
	ReferenceID       string   `json:"referenceId,omitempty"`
}

var fiatCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks params in a fixed order and returns the first violation.
func (p TransferParams) Validate() error {
	if len(p.SupportedNetworks) == 0 {
		return domain.Invalid("supportedNetworks", "supportedNetworks array is required and must not be empty")
	}
	var unknown []string
	for _, n := range p.SupportedNetworks {
		if !catalog.IsSupportedNetwork(n) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return domain.Invalid("supportedNetworks", "Invalid networks: %s", strings.Join(unknown, ", "))
	}

	if p.AssetCode != "" && !catalog.IsValidAssetCode(p.AssetCode) {
		return domain.Invalid("assetCode", "Invalid asset code: %s", p.AssetCode)
	}
	if p.FiatCode != "" && !fiatCodePattern.MatchString(p.FiatCode) {
		return domain.Invalid("fiatCode", "Invalid fiat code: %s", p.FiatCode)
	}
	if p.AssetAmount != "" && !catalog.IsValidAmount(p.AssetAmount) {
		return domain.Invalid("assetAmount", "Invalid asset amount: %s", p.AssetAmount)
	}
	if p.FiatAmount != "" && !catalog.IsValidAmount(p.FiatAmount) {
		return domain.Invalid("fiatAmount", "Invalid fiat amount: %s", p.FiatAmount)
	}

	if p.AssetAmount != "" && p.AssetCode == "" {
		return domain.Invalid("assetCode", "assetCode is required when assetAmount is specified")
	}
	if p.FiatAmount != "" && (p.AssetCode == "" || p.FiatCode == "") {
		return domain.Invalid("fiatCode", "assetCode and fiatCode are required when fiatAmount is specified")
	}

	if p.ReferenceID != "" && !IsValidTrackingID(p.ReferenceID) {
		return domain.Invalid("referenceId", "Invalid referenceId format: must be a v4 UUID")
	}
	return nil
}

// BuildTransferURL builds an offramp link. A missing ReferenceID is generated.
func (b *Builder) BuildTransferURL(p TransferParams) (TransferURL, error) {
	if err := p.Validate(); err != nil {
		return TransferURL{}, err
	}

	referenceID := p.ReferenceID
	if referenceID == "" {
		referenceID = b.newID()
	}

	params := map[string]string{
		"applicationId":     b.applicationID,
		"offRamp":           "true",
		"supportedNetworks": strings.Join(p.SupportedNetworks, ","),
		"redirectUrl":       b.CallbackURL(),
		"referenceId":       referenceID,
	}
	if p.AssetCode != "" {
		params["assetCode"] = p.AssetCode
	}
	if p.AssetAmount != "" {
		params["assetAmount"] = p.AssetAmount
	}
	if p.FiatAmount != "" {
		params["fiatCode"] = p.FiatCode
		params["fiatAmount"] = p.FiatAmount
	}

	metrics.URLsBuilt.WithLabelValues("offramp").Inc()
	b.log.Debug("Built offramp URL", "referenceId", referenceID, "networks", len(p.SupportedNetworks))

	return TransferURL{
		URL:         encode(OfframpBaseURL, params),
		ReferenceID: referenceID,
		Params:      params,
	}, nil
}

// encode renders params with sorted keys so equal inputs give equal URLs.
func encode(base string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return base + "?" + q.Encode()
}
