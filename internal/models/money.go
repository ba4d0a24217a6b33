package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact amount with two fractional digits. It is persisted as
// integer cents so that SQL aggregates never go through binary floating point.
type Money struct {
	decimal.Decimal
}

// MaxMoney is the largest amount accepted for a single transaction. It keeps
// cents and their SQL sums well inside int64.
var MaxMoney = NewMoneyFromCents(1_000_000_000_000_000)

func NewMoneyFromCents(cents int64) Money {
	return Money{Decimal: decimal.New(cents, -2)}
}

// ParseMoney parses a decimal string and rounds it half away from zero to cents.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q", s)
	}
	return Money{Decimal: d.Round(2)}, nil
}

func (m Money) Cents() int64 {
	return m.Round(2).Shift(2).IntPart()
}

func (m Money) Add(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

func (m Money) Sub(o Money) Money {
	return Money{Decimal: m.Decimal.Sub(o.Decimal)}
}

func (m Money) String() string {
	return m.StringFixed(2)
}

// MarshalJSON writes a plain JSON number such as 150.50.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts both numbers and quoted strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.Decimal = d.Round(2)
	return nil
}
