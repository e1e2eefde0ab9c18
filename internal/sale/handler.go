// Package sale orchestrates sale and return transactions: stock checks,
// effective-price totals, coupon application, payment settlement, and the
// receipt trail.
package sale

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/retail-console/internal/catalog"
	"github.com/noah-isme/retail-console/internal/coupon"
	"github.com/noah-isme/retail-console/internal/events"
	"github.com/noah-isme/retail-console/internal/pricing"
)

// ErrPaymentFailed indicates settlement rejected the payment.
var ErrPaymentFailed = errors.New("payment failed")

// ErrNoValidReceipt indicates a return had no matching prior purchase.
var ErrNoValidReceipt = errors.New("no valid receipt for return")

// ErrEmptyCart is returned when a transaction is requested with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// Line is one requested item/quantity in a cart. Carts are ephemeral; only
// the resulting receipt is persisted.
type Line struct {
	ItemName string
	Qty      int
}

// Catalog is the inventory capability the handler needs.
type Catalog interface {
	Get(name string) (catalog.Item, bool)
	AdjustQuantity(name string, delta int) error
}

// Coupons is the coupon lookup capability the handler needs.
type Coupons interface {
	IsValid(code string) bool
	FindByCode(code string) (coupon.Coupon, bool)
}

// Handler processes sales and returns. It owns no persistent state of its
// own; it orchestrates the catalog, the coupon ledger, settlement, and the
// receipt log.
type Handler struct {
	Items    Catalog
	Coupons  Coupons
	Receipts ReceiptLog
	Payments Settler
	Events   *events.Bus
	Log      zerolog.Logger
	Now      func() time.Time
}

func (h *Handler) now() time.Time {
	if h != nil && h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// ProcessSale runs one sale transaction. Stock is checked and decremented
// per line, in order; lines already written to inventory are not rolled back
// when a later line fails. A valid coupon reduces the payable total only,
// never the per-line prices on the receipt.
func (h *Handler) ProcessSale(ctx context.Context, customerID, cashierID string, lines []Line, method, couponCode string) (Receipt, error) {
	if len(lines) == 0 {
		return Receipt{}, fmt.Errorf("sale: %w", ErrEmptyCart)
	}

	priced := make([]pricing.Line, 0, len(lines))
	receiptLines := make([]ReceiptLine, 0, len(lines))
	for _, l := range lines {
		it, ok := h.Items.Get(l.ItemName)
		if !ok {
			return Receipt{}, fmt.Errorf("sale: %s: %w", l.ItemName, catalog.ErrItemNotFound)
		}
		if l.Qty <= 0 {
			return Receipt{}, fmt.Errorf("sale: %s: quantity must be positive", l.ItemName)
		}
		if l.Qty > it.Quantity {
			return Receipt{}, fmt.Errorf("sale: %s has %d in stock, need %d: %w", it.Name, it.Quantity, l.Qty, catalog.ErrInsufficientStock)
		}
		if err := h.Items.AdjustQuantity(it.Name, -l.Qty); err != nil {
			return Receipt{}, fmt.Errorf("sale: adjust stock: %w", err)
		}
		priced = append(priced, pricing.Line{Name: it.Name, Qty: l.Qty, UnitPrice: it.Price})
		receiptLines = append(receiptLines, ReceiptLine{Name: it.Name, Qty: l.Qty, UnitPrice: it.Price})
	}

	var applied *pricing.Coupon
	if code := strings.TrimSpace(couponCode); code != "" && h.Coupons != nil && h.Coupons.IsValid(code) {
		c, _ := h.Coupons.FindByCode(code)
		applied = &pricing.Coupon{Kind: c.Kind, Value: c.Value}
		h.emit(ctx, events.TopicCouponRedeemed, map[string]any{"code": c.Code, "customer": customerID})
	}

	summary := pricing.Compute(priced, applied)
	if err := h.Payments.Settle(ctx, summary.Total, method); err != nil {
		return Receipt{}, fmt.Errorf("sale: settle: %w", err)
	}

	receipt := Receipt{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		CashierID:  cashierID,
		Lines:      receiptLines,
		Total:      summary.Total,
		Date:       h.now(),
	}
	if err := h.Receipts.Append(receipt); err != nil {
		return Receipt{}, fmt.Errorf("sale: log receipt: %w", err)
	}
	h.emit(ctx, events.TopicSaleCompleted, map[string]any{
		"receipt_id": receipt.ID,
		"customer":   customerID,
		"total":      summary.Total.StringFixed(2),
		"lines":      len(receiptLines),
	})
	h.Log.Info().Str("receipt_id", receipt.ID).Str("customer", customerID).
		Str("total", summary.Total.StringFixed(2)).Msg("sale completed")
	return receipt, nil
}

// HandleReturn refunds previously purchased items. Each line must match a
// prior receipt for the same customer covering at least the requested
// quantity; refunds are issued at the item's current price, not the price
// originally paid.
func (h *Handler) HandleReturn(ctx context.Context, customerID, cashierID string, lines []Line) (Receipt, error) {
	if len(lines) == 0 {
		return Receipt{}, fmt.Errorf("return: %w", ErrEmptyCart)
	}
	history, err := h.Receipts.LoadAll()
	if err != nil {
		return Receipt{}, fmt.Errorf("return: load receipts: %w", err)
	}

	receiptLines := make([]ReceiptLine, 0, len(lines))
	priced := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		if l.Qty <= 0 {
			return Receipt{}, fmt.Errorf("return: %s: quantity must be positive", l.ItemName)
		}
		if !hasMatchingPurchase(history, customerID, l.ItemName, l.Qty) {
			return Receipt{}, fmt.Errorf("return: %s x%d for customer %s: %w", l.ItemName, l.Qty, customerID, ErrNoValidReceipt)
		}
		it, ok := h.Items.Get(l.ItemName)
		if !ok {
			return Receipt{}, fmt.Errorf("return: %s: %w", l.ItemName, catalog.ErrItemNotFound)
		}
		if err := h.Items.AdjustQuantity(it.Name, l.Qty); err != nil {
			return Receipt{}, fmt.Errorf("return: restock: %w", err)
		}
		receiptLines = append(receiptLines, ReceiptLine{Name: it.Name, Qty: l.Qty, UnitPrice: it.Price})
		priced = append(priced, pricing.Line{Name: it.Name, Qty: l.Qty, UnitPrice: it.Price})
	}

	summary := pricing.Compute(priced, nil)
	if err := h.Payments.Refund(ctx, summary.Total); err != nil {
		return Receipt{}, fmt.Errorf("return: refund: %w", err)
	}

	receipt := Receipt{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		CashierID:  cashierID,
		Lines:      receiptLines,
		Total:      summary.Total.Neg(),
		Date:       h.now(),
	}
	if err := h.Receipts.Append(receipt); err != nil {
		return Receipt{}, fmt.Errorf("return: log receipt: %w", err)
	}
	h.emit(ctx, events.TopicReturnCompleted, map[string]any{
		"receipt_id": receipt.ID,
		"customer":   customerID,
		"refund":     summary.Total.StringFixed(2),
	})
	h.Log.Info().Str("receipt_id", receipt.ID).Str("customer", customerID).
		Str("refund", summary.Total.StringFixed(2)).Msg("return completed")
	return receipt, nil
}

// hasMatchingPurchase reports whether any prior sale receipt for the
// customer covers the item at the requested quantity or more.
func hasMatchingPurchase(history []Receipt, customerID, itemName string, qty int) bool {
	for _, r := range history {
		if !strings.EqualFold(r.CustomerID, customerID) || r.Total.IsNegative() {
			continue
		}
		for _, rl := range r.Lines {
			if strings.EqualFold(rl.Name, itemName) && rl.Qty >= qty {
				return true
			}
		}
	}
	return false
}

func (h *Handler) emit(ctx context.Context, topic string, payload any) {
	if h.Events == nil {
		return
	}
	if _, err := h.Events.Emit(ctx, topic, payload); err != nil {
		h.Log.Warn().Err(err).Str("topic", topic).Msg("emit event")
	}
}
