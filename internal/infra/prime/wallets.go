package prime

import (
	"context"
	"net/url"
)

// Wallet is a Prime wallet in the configured portfolio.
type Wallet struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
}

type walletsResponse struct {
	Wallets    []Wallet `json:"wallets"`
	Pagination struct {
		NextCursor string `json:"next_cursor"`
		HasNext    bool   `json:"has_next"`
	} `json:"pagination"`
}

type depositInstructionsResponse struct {
	CryptoInstructions struct {
		Name              string `json:"name"`
		Type              string `json:"type"`
		Address           string `json:"address"`
		AccountIdentifier string `json:"account_identifier"`
	} `json:"crypto_instructions"`
}

// maxPages bounds pagination if the server keeps returning has_next.
const maxPages = 100

// ListWallets returns every wallet of the portfolio, following pagination.
func (c *Client) ListWallets(ctx context.Context) ([]Wallet, error) {
	path := "/v1/portfolios/" + url.PathEscape(c.portfolioID) + "/wallets"

	var (
		all    []Wallet
		cursor string
	)
	for page := 0; page < maxPages; page++ {
		q := url.Values{}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var resp walletsResponse
		if err := c.get(ctx, "list_wallets", path, q, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Wallets...)

		if !resp.Pagination.HasNext || resp.Pagination.NextCursor == "" || resp.Pagination.NextCursor == cursor {
			break
		}
		cursor = resp.Pagination.NextCursor
	}

	c.log.Debug("Listed Prime wallets", "count", len(all))
	return all, nil
}

// DepositInstructions returns the crypto deposit address of a wallet and
// its memo, if the network uses one.
func (c *Client) DepositInstructions(ctx context.Context, walletID string) (address, memo string, err error) {
	path := "/v1/portfolios/" + url.PathEscape(c.portfolioID) +
		"/wallets/" + url.PathEscape(walletID) + "/deposit_instructions"
	q := url.Values{"deposit_type": {"CRYPTO"}}

	var resp depositInstructionsResponse
	if err := c.get(ctx, "deposit_instructions", path, q, &resp); err != nil {
		return "", "", err
	}
	return resp.CryptoInstructions.Address, resp.CryptoInstructions.AccountIdentifier, nil
}
