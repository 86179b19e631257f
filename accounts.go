package igtrade

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// Balance holds the funds of a single account, in the account currency.
type Balance struct {
	Balance    decimal.Decimal `json:"balance"`
	Deposit    decimal.Decimal `json:"deposit"`
	ProfitLoss decimal.Decimal `json:"profitLoss"`
	Available  decimal.Decimal `json:"available"`
}

// Account is one trading account of the authenticated client. A client
// typically has several (CFD, spread bet) with one marked preferred.
type Account struct {
	AccountAlias    *string `json:"accountAlias"`
	AccountID       string  `json:"accountId"`
	AccountName     string  `json:"accountName"`
	AccountType     string  `json:"accountType"`
	Balance         Balance `json:"balance"`
	CanTransferFrom bool    `json:"canTransferFrom"`
	CanTransferTo   bool    `json:"canTransferTo"`
	Currency        string  `json:"currency"`
	Preferred       bool    `json:"preferred"`
	Status          string  `json:"status"`
}

// Funds returns the available balance as Money in the account currency.
func (a Account) Funds() Money { return M(a.Balance.Available, a.Currency) }

// ProfitLoss returns the running profit/loss as Money in the account currency.
func (a Account) ProfitLoss() Money { return M(a.Balance.ProfitLoss, a.Currency) }

type accountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// Accounts returns every account available on the platform for the
// authenticated client.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var resp accountsResponse
	if err := c.do(ctx, http.MethodGet, "/accounts", 1, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}
