package model

import "github.com/shopspring/decimal"

// Money is a fixed-point monetary amount. It marshals as a quoted decimal
// string with exactly two fractional digits, so a zero total renders as
// "0.00" rather than "0". Parsing, scanning, and arithmetic come from the
// embedded decimal.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func MoneyFromInt(n int64) Money {
	return Money{Decimal: decimal.NewFromInt(n)}
}

// Add keeps sums in the Money domain
func (m Money) Add(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
