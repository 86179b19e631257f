package igtrade

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// Market is a tradable instrument as returned by the market search.
type Market struct {
	Epic                     string           `json:"epic"`
	InstrumentName           string           `json:"instrumentName"`
	InstrumentType           string           `json:"instrumentType"`
	Expiry                   string           `json:"expiry"`
	High                     *decimal.Decimal `json:"high"`
	Low                      *decimal.Decimal `json:"low"`
	PercentageChange         *decimal.Decimal `json:"percentageChange"`
	NetChange                *decimal.Decimal `json:"netChange"`
	UpdateTime               string           `json:"updateTime"`
	Bid                      *decimal.Decimal `json:"bid"`
	Offer                    *decimal.Decimal `json:"offer"`
	DelayTime                int              `json:"delayTime"`
	StreamingPricesAvailable bool             `json:"streamingPricesAvailable"`
	MarketStatus             string           `json:"marketStatus"`
	ScalingFactor            int              `json:"scalingFactor"`
}

type marketsResponse struct {
	Markets []Market `json:"markets"`
}

// SearchMarkets looks up instruments matching a free text term (a name,
// an ISIN, an epic fragment).
func (c *Client) SearchMarkets(ctx context.Context, term string) ([]Market, error) {
	if term == "" {
		return nil, fmt.Errorf("search: a search term is required")
	}
	params := url.Values{}
	params.Set("searchTerm", term)
	var resp marketsResponse
	if err := c.do(ctx, http.MethodGet, "/markets", 1, params, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Markets, nil
}

// InstrumentCurrency is one currency an instrument can be dealt in.
type InstrumentCurrency struct {
	Code      string          `json:"code"`
	Symbol    string          `json:"symbol"`
	BaseRate  decimal.Decimal `json:"baseExchangeRate"`
	IsDefault bool            `json:"isDefault"`
}

// Instrument carries the static description of a market.
type Instrument struct {
	Epic                     string               `json:"epic"`
	Name                     string               `json:"name"`
	Type                     string               `json:"type"`
	Expiry                   string               `json:"expiry"`
	LotSize                  decimal.Decimal      `json:"lotSize"`
	ContractSize             string               `json:"contractSize"`
	ControlledRiskAllowed    bool                 `json:"controlledRiskAllowed"`
	StreamingPricesAvailable bool                 `json:"streamingPricesAvailable"`
	MarginFactor             decimal.Decimal      `json:"marginFactor"`
	MarginFactorUnit         string               `json:"marginFactorUnit"`
	Currencies               []InstrumentCurrency `json:"currencies"`
	NewsCode                 string               `json:"newsCode"`
	ChartCode                string               `json:"chartCode"`
}

// DealingRule is a single min/max constraint with its unit.
type DealingRule struct {
	Unit  string          `json:"unit"`
	Value decimal.Decimal `json:"value"`
}

// DealingRules are the platform's constraints for dealing a market.
type DealingRules struct {
	MinStepDistance               DealingRule `json:"minStepDistance"`
	MinDealSize                   DealingRule `json:"minDealSize"`
	MinControlledRiskStopDistance DealingRule `json:"minControlledRiskStopDistance"`
	MinNormalStopOrLimitDistance  DealingRule `json:"minNormalStopOrLimitDistance"`
	MaxStopOrLimitDistance        DealingRule `json:"maxStopOrLimitDistance"`
	MarketOrderPreference         string      `json:"marketOrderPreference"`
	TrailingStopsPreference       string      `json:"trailingStopsPreference"`
}

// MarketSnapshot is the live view of a market at request time.
type MarketSnapshot struct {
	MarketStatus              string           `json:"marketStatus"`
	NetChange                 *decimal.Decimal `json:"netChange"`
	PercentageChange          *decimal.Decimal `json:"percentageChange"`
	UpdateTime                string           `json:"updateTime"`
	DelayTime                 int              `json:"delayTime"`
	Bid                       *decimal.Decimal `json:"bid"`
	Offer                     *decimal.Decimal `json:"offer"`
	High                      *decimal.Decimal `json:"high"`
	Low                       *decimal.Decimal `json:"low"`
	DecimalPlacesFactor       int              `json:"decimalPlacesFactor"`
	ScalingFactor             int              `json:"scalingFactor"`
	ControlledRiskExtraSpread decimal.Decimal  `json:"controlledRiskExtraSpread"`
}

// MarketDetails is the full description of one market: the static
// instrument data, the dealing constraints and a live snapshot.
type MarketDetails struct {
	Instrument   Instrument     `json:"instrument"`
	DealingRules DealingRules   `json:"dealingRules"`
	Snapshot     MarketSnapshot `json:"snapshot"`
}

// Market retrieves the details of the market identified by an epic.
func (c *Client) Market(ctx context.Context, epic string) (*MarketDetails, error) {
	if epic == "" {
		return nil, fmt.Errorf("market: an epic is required")
	}
	var details MarketDetails
	if err := c.do(ctx, http.MethodGet, "/markets/"+url.PathEscape(epic), 3, nil, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}
