package igtrade

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Resolution is the aggregation period of historical price candles.
// Requesting WEEK returns one open/close/high/low candle per week,
// MINUTE_5 one per five minutes.
type Resolution string

const (
	Second   Resolution = "SECOND"
	Minute   Resolution = "MINUTE"
	Minute2  Resolution = "MINUTE_2"
	Minute3  Resolution = "MINUTE_3"
	Minute5  Resolution = "MINUTE_5"
	Minute10 Resolution = "MINUTE_10"
	Minute15 Resolution = "MINUTE_15"
	Minute30 Resolution = "MINUTE_30"
	Hour     Resolution = "HOUR"
	Hour2    Resolution = "HOUR_2"
	Hour3    Resolution = "HOUR_3"
	Hour4    Resolution = "HOUR_4"
	Day      Resolution = "DAY"
	Week     Resolution = "WEEK"
	Month    Resolution = "MONTH"
)

// Resolutions lists every valid resolution, in increasing period order.
func Resolutions() []Resolution {
	return []Resolution{
		Second,
		Minute, Minute2, Minute3, Minute5, Minute10, Minute15, Minute30,
		Hour, Hour2, Hour3, Hour4,
		Day, Week, Month,
	}
}

// Valid reports whether r is one of the platform's resolutions.
func (r Resolution) Valid() bool {
	for _, known := range Resolutions() {
		if r == known {
			return true
		}
	}
	return false
}

// PricePoint is one corner of a candle. LastTraded is only present for
// exchange traded instruments.
type PricePoint struct {
	Bid        *decimal.Decimal `json:"bid"`
	Ask        *decimal.Decimal `json:"ask"`
	LastTraded *decimal.Decimal `json:"lastTraded"`
}

// Candle is one aggregated price period.
type Candle struct {
	SnapshotTime     Time             `json:"snapshotTime"`
	OpenPrice        PricePoint       `json:"openPrice"`
	ClosePrice       PricePoint       `json:"closePrice"`
	HighPrice        PricePoint       `json:"highPrice"`
	LowPrice         PricePoint       `json:"lowPrice"`
	LastTradedVolume *decimal.Decimal `json:"lastTradedVolume"`
}

// Allowance tracks the account's remaining historical price quota. The
// platform meters price history per API key per week.
type Allowance struct {
	RemainingAllowance int   `json:"remainingAllowance"`
	TotalAllowance     int   `json:"totalAllowance"`
	AllowanceExpiry    int64 `json:"allowanceExpiry"`
}

// PriceMetadata accompanies every price history response.
type PriceMetadata struct {
	Allowance Allowance `json:"allowance"`
	Size      int       `json:"size"`
}

// PriceHistory is the payload of GET /prices/{epic}.
type PriceHistory struct {
	Prices         []Candle      `json:"prices"`
	InstrumentType string        `json:"instrumentType"`
	Metadata       PriceMetadata `json:"metadata"`
}

// PriceQuery bounds a price history request. Either a From/To range or a
// Max number of most recent candles; when both are given the range wins,
// matching the platform's own precedence.
type PriceQuery struct {
	Resolution Resolution
	From       time.Time
	To         time.Time
	Max        int
}

// priceTimeLayout is the layout the prices endpoint expects for range bounds.
const priceTimeLayout = "2006-01-02T15:04:05"

func (q PriceQuery) validate() error {
	if q.Resolution != "" && !q.Resolution.Valid() {
		return fmt.Errorf("prices: unknown resolution %q", q.Resolution)
	}
	if !q.From.IsZero() != !q.To.IsZero() {
		return fmt.Errorf("prices: a range requires both from and to")
	}
	if !q.From.IsZero() && q.From.After(q.To) {
		return fmt.Errorf("prices: range start %s is after end %s",
			q.From.Format(priceTimeLayout), q.To.Format(priceTimeLayout))
	}
	if q.Max < 0 {
		return fmt.Errorf("prices: max must be positive")
	}
	return nil
}

// Prices retrieves historical candles for an epic. The zero query returns
// the platform default: the last 10 MINUTE candles.
func (c *Client) Prices(ctx context.Context, epic string, q PriceQuery) (*PriceHistory, error) {
	if epic == "" {
		return nil, fmt.Errorf("prices: an epic is required")
	}
	if err := q.validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	if q.Resolution != "" {
		params.Set("resolution", string(q.Resolution))
	}
	switch {
	case !q.From.IsZero():
		params.Set("from", q.From.Format(priceTimeLayout))
		params.Set("to", q.To.Format(priceTimeLayout))
	case q.Max > 0:
		params.Set("max", strconv.Itoa(q.Max))
	}

	var history PriceHistory
	if err := c.do(ctx, http.MethodGet, "/prices/"+url.PathEscape(epic), 3, params, nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}
