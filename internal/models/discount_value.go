package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DiscountValue is a decimal amount kept at 2 places. It holds either a
// percentage or a fixed currency amount depending on the promo's
// discount type.
type DiscountValue struct {
	decimal.Decimal
}

// NewDiscountValue builds a value from a decimal.
func NewDiscountValue(amount decimal.Decimal) DiscountValue {
	return DiscountValue{Decimal: amount.Round(2)}
}

// MarshalJSON renders a fixed 2-place string.
func (v DiscountValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON accepts either a string or a number.
func (v *DiscountValue) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		v.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	v.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// Value implements driver.Valuer.
func (v DiscountValue) Value() (driver.Value, error) {
	return v.Decimal.Round(2).Value()
}

// Scan implements sql.Scanner.
func (v *DiscountValue) Scan(value interface{}) error {
	if err := v.Decimal.Scan(value); err != nil {
		return err
	}
	v.Decimal = v.Decimal.Round(2)
	return nil
}

// String returns the fixed 2-place representation.
func (v DiscountValue) String() string {
	return v.Decimal.Round(2).StringFixed(2)
}
