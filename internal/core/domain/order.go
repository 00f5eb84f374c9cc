package domain

// OrderState is the lifecycle state of a Robinhood Connect order.
type OrderState string

const (
	OrderInProgress OrderState = "ORDER_STATUS_IN_PROGRESS"
	OrderSucceeded  OrderState = "ORDER_STATUS_SUCCEEDED"
	OrderFailed     OrderState = "ORDER_STATUS_FAILED"
	OrderCancelled  OrderState = "ORDER_STATUS_CANCELLED"
)

// Known reports whether s is one of the defined states.
func (s OrderState) Known() bool {
	switch s {
	case OrderInProgress, OrderSucceeded, OrderFailed, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions can happen.
func (s OrderState) Terminal() bool {
	return s == OrderSucceeded || s == OrderFailed || s == OrderCancelled
}

// OrderStatus is an immutable snapshot of an order as reported upstream.
type OrderStatus struct {
	ApplicationID           string     `json:"applicationId,omitempty"`
	ConnectID               string     `json:"connectId,omitempty"`
	ReferenceID             string     `json:"referenceId"`
	Status                  OrderState `json:"status"`
	AssetCode               string     `json:"assetCode"`
	NetworkCode             Network    `json:"networkCode"`
	CryptoAmount            string     `json:"cryptoAmount"`
	FiatCode                string     `json:"fiatCode,omitempty"`
	FiatAmount              string     `json:"fiatAmount"`
	Price                   string     `json:"price,omitempty"`
	ProcessingFee           string     `json:"processingFee,omitempty"`
	TotalAmount             string     `json:"totalAmount,omitempty"`
	PaymentMethod           string     `json:"paymentMethod,omitempty"`
	DestinationAddress      string     `json:"destinationAddress,omitempty"`
	BlockchainTransactionID string     `json:"blockchainTransactionId,omitempty"`
}

// DepositRedemption is the deposit address Robinhood hands out for an offramp.
type DepositRedemption struct {
	Address     string  `json:"address"`
	AddressTag  string  `json:"addressTag,omitempty"`
	AssetCode   string  `json:"assetCode"`
	AssetAmount string  `json:"assetAmount"`
	NetworkCode Network `json:"networkCode"`
}
