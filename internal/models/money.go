package models

import (
	"github.com/shopspring/decimal"
)

// Money is a display amount in major currency units.
type Money struct {
	decimal.Decimal
}

// FromMinor converts kopecks to roubles. A zero amount carries no price
// information and yields nil.
func FromMinor(minor int64) *Money {
	if minor == 0 {
		return nil
	}
	return &Money{Decimal: decimal.New(minor, -2)}
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

func (m Money) String() string {
	return m.Decimal.String()
}
