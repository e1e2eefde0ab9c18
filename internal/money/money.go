package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents rounds a monetary amount to two decimal places.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders an amount for display, e.g. "$29.99".
func Format(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Parse converts user input into a decimal amount. A leading currency
// symbol is tolerated.
func Parse(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}
