package renderer

import (
	"github.com/igtrade/igtrade"
)

// AccountsMarkdown renders the account list, and the session details when
// available, as a markdown report.
func AccountsMarkdown(accounts []igtrade.Account, session *igtrade.SessionDetails) string {
	r := newReport()
	r.Printf("# Accounts\n\n")
	if len(accounts) == 0 {
		r.Printf("No accounts on this platform.\n")
	} else {
		r.Printf("| ID | Name | Type | Currency | Available | P/L | Status | Preferred |\n")
		r.Printf("|:---|:---|:---|:---|---:|---:|:---|:---:|\n")
		for _, a := range accounts {
			preferred := ""
			if a.Preferred {
				preferred = "✓"
			}
			r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				a.AccountID, a.AccountName, a.AccountType, a.Currency,
				a.Funds(), a.ProfitLoss().SignedString(), a.Status, preferred)
		}
	}

	if session != nil {
		r.Printf("\n")
		r.WriteString(sessionSection(session))
	}
	return r.String()
}

// SessionMarkdown renders the session details alone.
func SessionMarkdown(session *igtrade.SessionDetails) string {
	r := newReport()
	r.Printf("# Session\n\n")
	r.WriteString(sessionSection(session))
	return r.String()
}

func sessionSection(s *igtrade.SessionDetails) string {
	r := newReport()
	r.Printf("## Session\n\n")
	r.Printf("| Client | Account | Currency | Locale | TZ offset | Streaming endpoint |\n")
	r.Printf("|:---|:---|:---|:---|---:|:---|\n")
	r.Printf("| %s | %s | %s | %s | %d | %s |\n",
		s.ClientID, s.AccountID, s.Currency, s.Locale, s.TimezoneOffset, orDash(s.LightstreamerEndpoint))
	return r.String()
}
