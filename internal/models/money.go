package models

import (
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount with two fractional digits.
// It is stored as decimal(10,2) and encoded in JSON as a fixed-point string ("45.00").
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MustMoney parses s and panics on malformed input. Intended for literals and seed data.
func MustMoney(s string) Money {
	return NewMoney(decimal.RequireFromString(s))
}

// MoneyPtr is a convenience for optional amounts such as Product.OriginalPrice.
func MoneyPtr(s string) *Money {
	m := MustMoney(s)
	return &m
}

// MarshalJSON always renders two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// String renders two decimal places.
func (m Money) String() string {
	return m.StringFixed(2)
}
