package discount

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/catalog"
	"github.com/noah-isme/retail-console/internal/events"
	"github.com/noah-isme/retail-console/internal/money"
)

// ErrNoItemsFound indicates a department-wide apply matched zero items.
var ErrNoItemsFound = errors.New("no items found in department")

// Catalog is the item lookup/mutation capability the engine needs.
type Catalog interface {
	Get(name string) (catalog.Item, bool)
	ByDepartment(department string) []catalog.Item
	All() []catalog.Item
	SetPrice(name string, price decimal.Decimal) error
}

// Engine applies and removes discounts against stored item prices. Discounts
// mutate the stored price in place; the ledger's original-price table is what
// makes removal restorable.
type Engine struct {
	Items  Catalog
	Ledger *Ledger
	Events *events.Bus
	Log    zerolog.Logger
}

// Discounted computes the reduced price for a base price. No floor at zero
// is applied; rejecting values that would drive a price negative is the
// boundary layer's job.
func Discounted(base, value decimal.Decimal, kind Kind) decimal.Decimal {
	if kind == Percentage {
		hundred := decimal.NewFromInt(100)
		return base.Mul(hundred.Sub(value)).Div(hundred)
	}
	return base.Sub(value)
}

// ApplyToItem discounts a single item, capturing its original price first.
func (e *Engine) ApplyToItem(ctx context.Context, name string, value decimal.Decimal, kind Kind) error {
	it, ok := e.Items.Get(name)
	if !ok {
		return fmt.Errorf("discount: %s: %w", name, catalog.ErrItemNotFound)
	}
	if err := e.Ledger.Add(it.Name, value, kind); err != nil {
		return err
	}
	if err := e.discountItem(it, value, kind); err != nil {
		return err
	}
	e.emit(ctx, events.TopicDiscountApplied, map[string]any{
		"target": it.Name, "scope": "item", "kind": string(kind), "value": value.String(),
	})
	return nil
}

// ApplyToDepartment discounts every item in a department. Each item captures
// its own original price under its own item-name key.
func (e *Engine) ApplyToDepartment(ctx context.Context, department string, value decimal.Decimal, kind Kind) error {
	items := e.Items.ByDepartment(department)
	if len(items) == 0 {
		return fmt.Errorf("discount: department %s: %w", department, ErrNoItemsFound)
	}
	if err := e.Ledger.Add(strings.TrimSpace(department), value, kind); err != nil {
		return err
	}
	for _, it := range items {
		if err := e.discountItem(it, value, kind); err != nil {
			return err
		}
	}
	e.emit(ctx, events.TopicDiscountApplied, map[string]any{
		"target": department, "scope": "department", "kind": string(kind), "value": value.String(), "items": len(items),
	})
	return nil
}

// ApplyStoreWide discounts every item in the catalog. An empty catalog is
// still a success.
func (e *Engine) ApplyStoreWide(ctx context.Context, value decimal.Decimal, kind Kind) error {
	if err := e.Ledger.Add(TargetStoreWide, value, kind); err != nil {
		return err
	}
	items := e.Items.All()
	for _, it := range items {
		if err := e.discountItem(it, value, kind); err != nil {
			return err
		}
	}
	e.emit(ctx, events.TopicDiscountApplied, map[string]any{
		"target": TargetStoreWide, "scope": "store", "kind": string(kind), "value": value.String(), "items": len(items),
	})
	return nil
}

// Remove lifts the discount recorded for a target and restores affected item
// prices. The target is resolved in precedence order: the store-wide
// sentinel, then a department with at least one item, then a single item
// name. For store-wide and department targets an item without a captured
// original price is left as-is (it may have joined the catalog after the
// discount was applied); for a plain item target the missing capture is an
// error.
func (e *Engine) Remove(ctx context.Context, target string) error {
	trimmed := strings.TrimSpace(target)
	scope := "item"
	switch {
	case strings.EqualFold(trimmed, TargetStoreWide):
		scope = "store"
		for _, it := range e.Items.All() {
			if err := e.restoreItem(it.Name); err != nil {
				return err
			}
		}
	case len(e.Items.ByDepartment(trimmed)) > 0:
		scope = "department"
		for _, it := range e.Items.ByDepartment(trimmed) {
			if err := e.restoreItem(it.Name); err != nil {
				return err
			}
		}
	default:
		it, ok := e.Items.Get(trimmed)
		if !ok {
			return fmt.Errorf("discount: %s: %w", trimmed, catalog.ErrItemNotFound)
		}
		original, err := e.Ledger.Restore(it.Name)
		if err != nil {
			return err
		}
		if err := e.Items.SetPrice(it.Name, original); err != nil {
			return err
		}
	}
	if _, err := e.Ledger.Remove(trimmed); err != nil {
		return err
	}
	e.emit(ctx, events.TopicDiscountRemoved, map[string]any{"target": trimmed, "scope": scope})
	return nil
}

// EffectivePrice returns the price currently charged for an item. Stored
// prices already reflect any applied discount, so no second ledger lookup
// happens at read time.
func (e *Engine) EffectivePrice(name string) (decimal.Decimal, error) {
	it, ok := e.Items.Get(name)
	if !ok {
		return decimal.Zero, fmt.Errorf("discount: %s: %w", name, catalog.ErrItemNotFound)
	}
	return it.Price, nil
}

func (e *Engine) discountItem(it catalog.Item, value decimal.Decimal, kind Kind) error {
	if err := e.Ledger.CaptureOriginal(it.Name, it.Price); err != nil {
		return err
	}
	reduced := money.Cents(Discounted(it.Price, value, kind))
	if err := e.Items.SetPrice(it.Name, reduced); err != nil {
		return err
	}
	return nil
}

// restoreItem puts an item back to its captured original price, tolerating a
// missing capture.
func (e *Engine) restoreItem(name string) error {
	original, err := e.Ledger.Restore(name)
	if err != nil {
		if errors.Is(err, ErrNoOriginalPrice) {
			e.Log.Debug().Str("item", name).Msg("no original price captured, price left unchanged")
			return nil
		}
		return err
	}
	return e.Items.SetPrice(name, original)
}

func (e *Engine) emit(ctx context.Context, topic string, payload any) {
	if e.Events == nil {
		return
	}
	if _, err := e.Events.Emit(ctx, topic, payload); err != nil {
		e.Log.Warn().Err(err).Str("topic", topic).Msg("emit event")
	}
}
