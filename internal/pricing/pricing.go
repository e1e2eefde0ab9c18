// Package pricing computes cart totals. It mirrors the shape of a simple
// fold over line items: subtotal at effective prices, then an optional
// coupon reduction applied to the subtotal only.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/discount"
	"github.com/noah-isme/retail-console/internal/money"
)

// Line describes a cart line used for pricing calculation. UnitPrice is the
// effective (already discounted) price per unit.
type Line struct {
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
}

// Coupon carries the discount a valid coupon contributes to the total.
type Coupon struct {
	Kind  discount.Kind
	Value decimal.Decimal
}

// Summary aggregates computed pricing components, rounded to cents.
type Summary struct {
	Subtotal decimal.Decimal
	Coupon   decimal.Decimal
	Total    decimal.Decimal
}

// Compute calculates cart totals given the provided inputs. The coupon
// reduction is capped at the subtotal so a fixed-amount coupon can never
// drive a total negative.
func Compute(lines []Line, coupon *Coupon) Summary {
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	cut := decimal.Zero
	if coupon != nil {
		if coupon.Kind == discount.Percentage {
			cut = subtotal.Mul(coupon.Value).Div(decimal.NewFromInt(100))
		} else {
			cut = coupon.Value
		}
		if cut.GreaterThan(subtotal) {
			cut = subtotal
		}
	}
	return Summary{
		Subtotal: money.Cents(subtotal),
		Coupon:   money.Cents(cut),
		Total:    money.Cents(subtotal.Sub(cut)),
	}
}
