package robinhood

import (
	"context"
	"net/http"
	"net/url"
	"sort"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/infra/upstream"
)

// CreateConnectID exchanges a withdrawal address for a connect id.
func (c *Client) CreateConnectID(ctx context.Context, withdrawalAddress, userIdentifier string) (string, error) {
	const op = "create_connect_id"

	var resp connectIDResponse
	req := connectIDRequest{WithdrawalAddress: withdrawalAddress, UserIdentifier: userIdentifier}
	if err := c.do(ctx, op, http.MethodPost, "/catpay/v1/connect_id/", nil, req, &resp); err != nil {
		return "", err
	}

	id := resp.id()
	if id == "" {
		return "", upstream.Malformed(op, "no connect_id in response")
	}
	c.log.Info("ConnectId generated", "connectId", id)
	return id, nil
}

// GetOrderStatus fetches an offramp order by its referenceId.
func (c *Client) GetOrderStatus(ctx context.Context, referenceID string) (domain.OrderStatus, error) {
	const op = "order_status"

	var resp orderResponse
	q := url.Values{"referenceId": {referenceID}}
	if err := c.do(ctx, op, http.MethodGet, "/catpay/v1/external/order/", q, nil, &resp); err != nil {
		return domain.OrderStatus{}, err
	}
	return resp.toDomain(op)
}

// GetOrderDetails fetches an onramp order by its connectId.
func (c *Client) GetOrderDetails(ctx context.Context, connectID string) (domain.OrderStatus, error) {
	const op = "order_details"

	var resp orderResponse
	path := "/catpay/v1/external/order/" + url.PathEscape(connectID)
	if err := c.do(ctx, op, http.MethodGet, path, nil, nil, &resp); err != nil {
		return domain.OrderStatus{}, err
	}
	if resp.ConnectID == "" {
		resp.ConnectID = connectID
	}
	return resp.toDomain(op)
}

// RedeemDepositAddress asks Robinhood for the address the user sends an
// offramp transfer to.
func (c *Client) RedeemDepositAddress(ctx context.Context, referenceID string) (domain.DepositRedemption, error) {
	const op = "redeem_deposit_address"

	var resp redeemResponse
	req := redeemRequest{ReferenceID: referenceID}
	if err := c.do(ctx, op, http.MethodPost, "/catpay/v1/redeem_deposit_address/", nil, req, &resp); err != nil {
		return domain.DepositRedemption{}, err
	}
	switch {
	case resp.Address == "":
		return domain.DepositRedemption{}, upstream.Malformed(op, "missing address")
	case resp.AssetCode == "":
		return domain.DepositRedemption{}, upstream.Malformed(op, "missing assetCode")
	case resp.NetworkCode == "":
		return domain.DepositRedemption{}, upstream.Malformed(op, "missing networkCode")
	}

	return domain.DepositRedemption{
		Address:     resp.Address,
		AddressTag:  resp.AddressTag,
		AssetCode:   resp.AssetCode,
		AssetAmount: string(resp.AssetAmount),
		NetworkCode: domain.Network(resp.NetworkCode),
	}, nil
}

// SupportedCurrency is one asset Robinhood Connect offers the application.
type SupportedCurrency struct {
	Code     string
	Name     string
	Networks []domain.Network
}

// SupportedCurrencies lists the assets enabled for the application, by code.
func (c *Client) SupportedCurrencies(ctx context.Context) ([]SupportedCurrency, error) {
	const op = "supported_currencies"

	var resp supportedCurrenciesResponse
	q := url.Values{"applicationId": {c.applicationID}}
	if err := c.do(ctx, op, http.MethodGet, "/catpay/v1/supported_currencies/", q, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]SupportedCurrency, 0, len(resp.Pairs))
	for _, p := range resp.Pairs {
		if p.AssetCurrency.Code == "" {
			continue
		}
		sc := SupportedCurrency{Code: p.AssetCurrency.Code, Name: p.AssetCurrency.Name}
		for _, n := range p.SupportedNetworks {
			sc.Networks = append(sc.Networks, domain.Network(n))
		}
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
