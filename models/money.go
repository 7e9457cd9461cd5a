package models

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount backed by a decimal(10,2) column.
// It always serializes as a string with two fractional digits, e.g. "15.00".
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to two decimal places (half away from zero).
func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

// MoneyFromString parses a decimal string such as "19.90".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d), nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
