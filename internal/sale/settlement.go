package sale

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Settler is the payment settlement capability the handler delegates to.
type Settler interface {
	Settle(ctx context.Context, amount decimal.Decimal, method string) error
	Refund(ctx context.Context, amount decimal.Decimal) error
}

// Terminal is the in-store settlement device. It accepts any non-empty
// payment method; there is no external processor behind it.
type Terminal struct {
	Log zerolog.Logger
}

// Settle implements Settler.
func (t Terminal) Settle(_ context.Context, amount decimal.Decimal, method string) error {
	if strings.TrimSpace(method) == "" {
		return fmt.Errorf("empty payment method: %w", ErrPaymentFailed)
	}
	t.Log.Info().Str("method", method).Str("amount", amount.StringFixed(2)).Msg("payment settled")
	return nil
}

// Refund implements Settler.
func (t Terminal) Refund(_ context.Context, amount decimal.Decimal) error {
	t.Log.Info().Str("amount", amount.StringFixed(2)).Msg("refund issued")
	return nil
}
