package renderer

import (
	"github.com/igtrade/igtrade"
)

// SearchMarkdown renders market search results as a markdown table.
func SearchMarkdown(term string, markets []igtrade.Market) string {
	r := newReport()
	r.Printf("# Search: %s\n\n", term)
	if len(markets) == 0 {
		r.Printf("No instruments matched %q.\n", term)
		return r.String()
	}

	r.Printf("| Epic | Instrument | Type | Expiry | Bid | Offer | Change | Status |\n")
	r.Printf("|:---|:---|:---|:---|---:|---:|---:|:---|\n")
	for _, m := range markets {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			m.Epic, m.InstrumentName, m.InstrumentType, orDash(m.Expiry),
			dec(m.Bid), dec(m.Offer), pct(m.PercentageChange), m.MarketStatus)
	}
	return r.String()
}

// InstrumentMarkdown renders the details of one market and, when present,
// its historical prices.
func InstrumentMarkdown(details *igtrade.MarketDetails, history *igtrade.PriceHistory) string {
	r := newReport()
	inst, snap := details.Instrument, details.Snapshot

	r.Printf("# %s\n\n", inst.Name)
	r.Printf("| Epic | Type | Expiry | Lot size | Margin | Status |\n")
	r.Printf("|:---|:---|:---|---:|---:|:---|\n")
	r.Printf("| %s | %s | %s | %s | %s%% | %s |\n",
		inst.Epic, inst.Type, orDash(inst.Expiry), inst.LotSize,
		inst.MarginFactor, snap.MarketStatus)

	r.Printf("\n## Snapshot\n\n")
	r.Printf("| Bid | Offer | High | Low | Change | Updated |\n")
	r.Printf("|---:|---:|---:|---:|---:|:---|\n")
	r.Printf("| %s | %s | %s | %s | %s | %s |\n",
		dec(snap.Bid), dec(snap.Offer), dec(snap.High), dec(snap.Low),
		pct(snap.PercentageChange), orDash(snap.UpdateTime))

	rules := details.DealingRules
	r.Printf("\n## Dealing Rules\n\n")
	r.Printf("| Min deal size | Min stop distance | Max stop distance |\n")
	r.Printf("|:---|:---|:---|\n")
	r.Printf("| %s %s | %s %s | %s %s |\n",
		rules.MinDealSize.Value, rules.MinDealSize.Unit,
		rules.MinNormalStopOrLimitDistance.Value, rules.MinNormalStopOrLimitDistance.Unit,
		rules.MaxStopOrLimitDistance.Value, rules.MaxStopOrLimitDistance.Unit)

	if history != nil {
		r.Printf("\n")
		r.WriteString(pricesSection(history))
	}
	return r.String()
}

// PricesMarkdown renders a price history alone.
func PricesMarkdown(history *igtrade.PriceHistory) string {
	r := newReport()
	r.Printf("# Prices\n\n")
	r.WriteString(pricesSection(history))
	return r.String()
}

func pricesSection(h *igtrade.PriceHistory) string {
	r := newReport()
	r.Printf("## Prices\n\n")
	if len(h.Prices) == 0 {
		r.Printf("No price data for this period.\n")
		return r.String()
	}

	r.Printf("| Time | Open | Close | High | Low | Volume |\n")
	r.Printf("|:---|---:|---:|---:|---:|---:|\n")
	for _, candle := range h.Prices {
		r.Printf("| %s | %s | %s | %s | %s | %s |\n",
			candle.SnapshotTime.Format("2006-01-02 15:04:05"),
			dec(candle.OpenPrice.Bid), dec(candle.ClosePrice.Bid),
			dec(candle.HighPrice.Bid), dec(candle.LowPrice.Bid),
			dec(candle.LastTradedVolume))
	}
	r.Printf("\n%d candles, %d of %d weekly data points left.\n",
		len(h.Prices), h.Metadata.Allowance.RemainingAllowance, h.Metadata.Allowance.TotalAllowance)
	return r.String()
}
