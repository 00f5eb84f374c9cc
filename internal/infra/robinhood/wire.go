package robinhood

import (
	"encoding/json"
	"strings"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/infra/upstream"
)

type connectIDRequest struct {
	WithdrawalAddress string `json:"withdrawal_address"`
	UserIdentifier    string `json:"user_identifier"`
}

// Older deployments answer with connect_id, newer ones with connectId.
type connectIDResponse struct {
	ConnectID       string `json:"connectId"`
	ConnectIDLegacy string `json:"connect_id"`
}

func (r connectIDResponse) id() string {
	if r.ConnectIDLegacy != "" {
		return r.ConnectIDLegacy
	}
	return r.ConnectID
}

// amount accepts either a plain string or number, or a fee object of the
// form {"type", "fiatAmount", "cryptoQuantity"}.
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amount(s)
	case '{':
		var fee struct {
			FiatAmount     string `json:"fiatAmount"`
			CryptoQuantity string `json:"cryptoQuantity"`
		}
		if err := json.Unmarshal(b, &fee); err != nil {
			return err
		}
		if fee.FiatAmount != "" {
			*a = amount(fee.FiatAmount)
		} else {
			*a = amount(fee.CryptoQuantity)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*a = amount(n.String())
	}
	return nil
}

type orderResponse struct {
	ApplicationID           string `json:"applicationId"`
	ConnectID               string `json:"connectId"`
	ReferenceID             string `json:"referenceId"`
	ReferenceIDLegacy       string `json:"referenceID"`
	Status                  string `json:"status"`
	AssetCode               string `json:"assetCode"`
	NetworkCode             string `json:"networkCode"`
	CryptoAmount            amount `json:"cryptoAmount"`
	FiatCode                string `json:"fiatCode"`
	FiatAmount              amount `json:"fiatAmount"`
	Price                   amount `json:"price"`
	ProcessingFee           amount `json:"processingFee"`
	TotalAmount             amount `json:"totalAmount"`
	PaymentMethod           string `json:"paymentMethod"`
	DestinationAddress      string `json:"destinationAddress"`
	BlockchainTransactionID string `json:"blockchainTransactionId"`
}

func (r orderResponse) toDomain(op string) (domain.OrderStatus, error) {
	state := domain.OrderState(strings.TrimSpace(r.Status))
	if state == "" {
		return domain.OrderStatus{}, upstream.Malformed(op, "missing status")
	}
	if !state.Known() {
		return domain.OrderStatus{}, upstream.Malformed(op, "unknown order status %q", r.Status)
	}

	ref := r.ReferenceID
	if ref == "" {
		ref = r.ReferenceIDLegacy
	}
	if ref == "" && r.ConnectID == "" {
		return domain.OrderStatus{}, upstream.Malformed(op, "missing referenceId and connectId")
	}

	return domain.OrderStatus{
		ApplicationID:           r.ApplicationID,
		ConnectID:               r.ConnectID,
		ReferenceID:             ref,
		Status:                  state,
		AssetCode:               r.AssetCode,
		NetworkCode:             domain.Network(r.NetworkCode),
		CryptoAmount:            string(r.CryptoAmount),
		FiatCode:                r.FiatCode,
		FiatAmount:              string(r.FiatAmount),
		Price:                   string(r.Price),
		ProcessingFee:           string(r.ProcessingFee),
		TotalAmount:             string(r.TotalAmount),
		PaymentMethod:           r.PaymentMethod,
		DestinationAddress:      r.DestinationAddress,
		BlockchainTransactionID: r.BlockchainTransactionID,
	}, nil
}

type redeemRequest struct {
	ReferenceID string `json:"referenceId"`
}

type redeemResponse struct {
	Address     string `json:"address"`
	AddressTag  string `json:"addressTag"`
	AssetCode   string `json:"assetCode"`
	AssetAmount amount `json:"assetAmount"`
	NetworkCode string `json:"networkCode"`
}

type supportedCurrenciesResponse struct {
	ApplicationID string `json:"applicationId"`
	Pairs         []struct {
		ID            string `json:"id"`
		AssetCurrency struct {
			ID           string `json:"id"`
			Code         string `json:"code"`
			Name         string `json:"name"`
			CurrencyType string `json:"currencyType"`
		} `json:"assetCurrency"`
		SupportedNetworks []string `json:"supportedNetworks"`
	} `json:"cryptoCurrencyPairs"`
}
