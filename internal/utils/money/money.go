// Package money converts between the core's integer minor-unit amounts and
// the decimal display amounts used at the API edge. Balance arithmetic never
// leaves int64; decimals exist for presentation only.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitExponent is the number of decimal places in a display amount.
// All supported account currencies use two (cents).
const minorUnitExponent = 2

// ToDisplay converts an amount in minor units to a display decimal,
// e.g. 12345 -> 123.45.
func ToDisplay(minor int64) decimal.Decimal {
	return decimal.New(minor, -minorUnitExponent)
}

// FromDisplay converts a display decimal to minor units, e.g. 123.45 -> 12345.
// It fails if the amount carries fractional cents, which would otherwise be
// silently truncated into rounding drift.
func FromDisplay(d decimal.Decimal) (int64, error) {
	shifted := d.Shift(minorUnitExponent)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), minorUnitExponent)
	}
	return shifted.IntPart(), nil
}

// FormatMinor renders an amount in minor units as a fixed two-decimal string.
func FormatMinor(minor int64) string {
	return ToDisplay(minor).StringFixed(minorUnitExponent)
}
