// Package renderer formats igtrade records as markdown reports for the
// command line tool.
package renderer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// report accumulates markdown output.
type report struct {
	*strings.Builder
}

func newReport() *report {
	return &report{Builder: &strings.Builder{}}
}

// Printf formats according to a format specifier and writes to the report.
func (r *report) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// dec renders a decimal, or a dash for a nil optional.
func dec(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return d.String()
}

// pct renders an optional decimal as a signed percentage.
func pct(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	if d.IsPositive() {
		return "+" + d.String() + "%"
	}
	return d.String() + "%"
}

// orDash substitutes a dash for the empty string to keep table cells visible.
func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
