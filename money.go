package igtrade

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money couples a decimal amount with its currency. The amount is kept as
// an exact decimal; go-money is only consulted for the currency's fraction
// and display format.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from a decimal amount expressed in major units.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// currency returns a never-nil currency for the money's code.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency's own symbol and fraction,
// e.g. "£1,204.50".
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString is like String but keeps an explicit sign, which reads
// better in profit/loss columns.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) Currency() string        { return m.cur }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }
