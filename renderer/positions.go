package renderer

import (
	"github.com/igtrade/igtrade"
)

// PositionsMarkdown renders the open positions as a markdown table.
func PositionsMarkdown(positions []igtrade.OpenPosition) string {
	r := newReport()
	r.Printf("# Open Positions\n\n")
	if len(positions) == 0 {
		r.Printf("No open positions.\n")
		return r.String()
	}

	r.Printf("| Deal | Instrument | Dir | Size | Open | Bid | Offer | Stop | Limit | Change | Opened |\n")
	r.Printf("|:---|:---|:---|---:|---:|---:|---:|---:|---:|---:|:---|\n")
	for _, p := range positions {
		pos, mkt := p.Position, p.Market
		opened := ""
		if !pos.CreatedDate.IsZero() {
			opened = pos.CreatedDate.Format("2006-01-02 15:04")
		}
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			pos.DealID, mkt.InstrumentName, pos.Direction, pos.Size,
			pos.OpenLevel, dec(mkt.Bid), dec(mkt.Offer),
			dec(pos.StopLevel), dec(pos.LimitLevel),
			pct(&mkt.PercentageChange), orDash(opened))
	}
	return r.String()
}
