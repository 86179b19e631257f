package igtrade

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// The gateway rejects quoted numbers in deal bodies, so decimals must
// marshal as plain JSON numbers.
func init() { decimal.MarshalJSONWithoutQuotes = true }

// Direction of a deal: buy (long) or sell (short).
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// OrderType controls how an over-the-counter deal is executed.
type OrderType string

const (
	// MarketOrder executes at whatever level the market is at.
	MarketOrder OrderType = "MARKET"
	// LimitOrder executes at the given level or better, or not at all.
	LimitOrder OrderType = "LIMIT"
)

// Position is an open trade on the account. Risk levels (stop, limit,
// trailing) are pointers because the platform reports null when unset.
type Position struct {
	ContractSize         decimal.Decimal  `json:"contractSize"`
	CreatedDate          Time             `json:"createdDate"`
	DealID               string           `json:"dealId"`
	Size                 decimal.Decimal  `json:"dealSize"`
	Direction            Direction        `json:"direction"`
	LimitLevel           *decimal.Decimal `json:"limitLevel"`
	OpenLevel            decimal.Decimal  `json:"openLevel"`
	Currency             string           `json:"currency"`
	ControlledRisk       bool             `json:"controlledRisk"`
	StopLevel            *decimal.Decimal `json:"stopLevel"`
	TrailingStep         *decimal.Decimal `json:"trailingStep"`
	TrailingStopDistance *decimal.Decimal `json:"trailingStopDistance"`
	LimitedRiskPremium   *decimal.Decimal `json:"limitedRiskPremium"`
}

// PositionMarket is the market snapshot attached to each open position.
type PositionMarket struct {
	InstrumentName           string           `json:"instrumentName"`
	Expiry                   string           `json:"expiry"`
	Epic                     string           `json:"epic"`
	InstrumentType           string           `json:"instrumentType"`
	LotSize                  decimal.Decimal  `json:"lotSize"`
	High                     decimal.Decimal  `json:"high"`
	Low                      decimal.Decimal  `json:"low"`
	PercentageChange         decimal.Decimal  `json:"percentageChange"`
	NetChange                decimal.Decimal  `json:"netChange"`
	Bid                      *decimal.Decimal `json:"bid"`
	Offer                    *decimal.Decimal `json:"offer"`
	UpdateTime               string           `json:"updateTime"`
	DelayTime                int              `json:"delayTime"`
	StreamingPricesAvailable bool             `json:"streamingPricesAvailable"`
	MarketStatus             string           `json:"marketStatus"`
	ScalingFactor            int              `json:"scalingFactor"`
}

// OpenPosition pairs a position with the market it is held in, exactly as
// GET /positions reports them.
type OpenPosition struct {
	Position Position       `json:"position"`
	Market   PositionMarket `json:"market"`
}

type positionsResponse struct {
	Positions []OpenPosition `json:"positions"`
}

// Positions returns all open positions of the authenticated account.
func (c *Client) Positions(ctx context.Context) ([]OpenPosition, error) {
	var resp positionsResponse
	if err := c.do(ctx, http.MethodGet, "/positions", 1, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Positions, nil
}

// OrderRequest describes a new over-the-counter deal.
type OrderRequest struct {
	Epic           string           `json:"epic"`
	Expiry         string           `json:"expiry"`
	Direction      Direction        `json:"direction"`
	Size           decimal.Decimal  `json:"size"`
	OrderType      OrderType        `json:"orderType"`
	Level          *decimal.Decimal `json:"level,omitempty"`
	CurrencyCode   string           `json:"currencyCode"`
	ForceOpen      bool             `json:"forceOpen"`
	GuaranteedStop bool             `json:"guaranteedStop"`
	StopLevel      *decimal.Decimal `json:"stopLevel,omitempty"`
	StopDistance   *decimal.Decimal `json:"stopDistance,omitempty"`
	LimitLevel     *decimal.Decimal `json:"limitLevel,omitempty"`
	LimitDistance  *decimal.Decimal `json:"limitDistance,omitempty"`
}

func (r OrderRequest) validate() error {
	if r.Epic == "" {
		return fmt.Errorf("order: epic is required")
	}
	if r.Direction != Buy && r.Direction != Sell {
		return fmt.Errorf("order: direction must be %s or %s", Buy, Sell)
	}
	if !r.Size.IsPositive() {
		return fmt.Errorf("order: size must be positive")
	}
	if r.OrderType == LimitOrder && r.Level == nil {
		return fmt.Errorf("order: a %s order requires a level", LimitOrder)
	}
	return nil
}

// dealReferenceResponse is the body of every deal-creating call.
type dealReferenceResponse struct {
	DealReference string `json:"dealReference"`
}

// CreatePosition opens an over-the-counter position and returns the deal
// reference assigned by the platform. The reference identifies the deal in
// subsequent confirmations; it is not the deal ID of the resulting position.
func (c *Client) CreatePosition(ctx context.Context, order OrderRequest) (string, error) {
	if err := order.validate(); err != nil {
		return "", err
	}
	if order.Expiry == "" {
		order.Expiry = "-"
	}
	if order.OrderType == "" {
		order.OrderType = MarketOrder
	}
	var resp dealReferenceResponse
	if err := c.do(ctx, http.MethodPost, "/positions/otc", 2, nil, order, &resp); err != nil {
		return "", err
	}
	return resp.DealReference, nil
}

// CloseRequest describes the closing deal for an open position. Size may be
// smaller than the position's for a partial close, and Direction must be
// the opposite of the position's.
type CloseRequest struct {
	DealID    string           `json:"dealId"`
	Direction Direction        `json:"direction"`
	Size      decimal.Decimal  `json:"size"`
	OrderType OrderType        `json:"orderType"`
	Level     *decimal.Decimal `json:"level,omitempty"`
}

// ClosePosition closes (part of) an open position and returns the deal
// reference of the closing deal. The gateway accepts closes as a POST with
// a method override header rather than a true DELETE with a body.
func (c *Client) ClosePosition(ctx context.Context, close CloseRequest) (string, error) {
	if close.DealID == "" {
		return "", fmt.Errorf("close: dealId is required")
	}
	if close.Direction != Buy && close.Direction != Sell {
		return "", fmt.Errorf("close: direction must be %s or %s", Buy, Sell)
	}
	if !close.Size.IsPositive() {
		return "", fmt.Errorf("close: size must be positive")
	}
	if close.OrderType == "" {
		close.OrderType = MarketOrder
	}
	var resp dealReferenceResponse
	err := c.doWithHeaders(ctx, http.MethodPost, "/positions/otc", 1,
		map[string]string{"_method": "DELETE"}, close, &resp)
	if err != nil {
		return "", err
	}
	return resp.DealReference, nil
}
