// Package discount tracks active discounts per target and the pre-discount
// original price per item, and applies discounts to catalog prices at item,
// department, or store-wide granularity.
package discount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind distinguishes percentage from fixed-amount discounts.
type Kind string

const (
	// Percentage reduces a price by value percent.
	Percentage Kind = "PERCENTAGE"
	// Fixed reduces a price by a fixed amount.
	Fixed Kind = "FIXED"
)

// TargetStoreWide is the sentinel target meaning every item in the store.
const TargetStoreWide = "store-wide"

// Discount records an active discount for a target: an item name, a
// department name, or the store-wide sentinel.
type Discount struct {
	Target string
	Value  decimal.Decimal
	Kind   Kind
}

// ErrNoOriginalPrice indicates no original price was captured for the key.
var ErrNoOriginalPrice = errors.New("no original price recorded")

// LedgerRepository persists the discount table and the original-price table.
type LedgerRepository interface {
	LoadDiscounts() ([]Discount, error)
	SaveDiscounts([]Discount) error
	LoadOriginalPrices() (map[string]decimal.Decimal, error)
	SaveOriginalPrices(map[string]decimal.Decimal) error
}

// Ledger owns the active discount records and the original-price table that
// makes discount removal restorable.
type Ledger struct {
	repo      LedgerRepository
	discounts []Discount
	originals map[string]decimal.Decimal
}

// NewLedger loads both tables from the repository.
func NewLedger(repo LedgerRepository) (*Ledger, error) {
	if repo == nil {
		return nil, errors.New("discount: repository is required")
	}
	discounts, err := repo.LoadDiscounts()
	if err != nil {
		return nil, fmt.Errorf("discount: load discounts: %w", err)
	}
	originals, err := repo.LoadOriginalPrices()
	if err != nil {
		return nil, fmt.Errorf("discount: load original prices: %w", err)
	}
	if originals == nil {
		originals = map[string]decimal.Decimal{}
	}
	return &Ledger{repo: repo, discounts: discounts, originals: originals}, nil
}

func ledgerKey(target string) string {
	return strings.ToLower(strings.TrimSpace(target))
}

// Add inserts a discount record for the target and persists the table.
func (l *Ledger) Add(target string, value decimal.Decimal, kind Kind) error {
	l.discounts = append(l.discounts, Discount{Target: strings.TrimSpace(target), Value: value, Kind: kind})
	if err := l.repo.SaveDiscounts(l.List()); err != nil {
		return fmt.Errorf("discount: persist discounts: %w", err)
	}
	return nil
}

// CaptureOriginal records the pre-discount price for a key only if none is
// stored yet. First capture wins, so repeated discounting of the same item
// never loses the true original price.
func (l *Ledger) CaptureOriginal(key string, price decimal.Decimal) error {
	k := ledgerKey(key)
	if _, ok := l.originals[k]; ok {
		return nil
	}
	l.originals[k] = price
	if err := l.repo.SaveOriginalPrices(l.snapshotOriginals()); err != nil {
		return fmt.Errorf("discount: persist original prices: %w", err)
	}
	return nil
}

// OriginalPrice looks up the captured original price for a key.
func (l *Ledger) OriginalPrice(key string) (decimal.Decimal, error) {
	price, ok := l.originals[ledgerKey(key)]
	if !ok {
		return decimal.Zero, fmt.Errorf("discount: %s: %w", key, ErrNoOriginalPrice)
	}
	return price, nil
}

// Restore returns the captured original price for a key and deletes the
// record; the original is retained only for the lifetime of the discount.
func (l *Ledger) Restore(key string) (decimal.Decimal, error) {
	k := ledgerKey(key)
	price, ok := l.originals[k]
	if !ok {
		return decimal.Zero, fmt.Errorf("discount: %s: %w", key, ErrNoOriginalPrice)
	}
	delete(l.originals, k)
	if err := l.repo.SaveOriginalPrices(l.snapshotOriginals()); err != nil {
		return decimal.Zero, fmt.Errorf("discount: persist original prices: %w", err)
	}
	return price, nil
}

// Remove deletes every discount record matching the target
// (case-insensitive) and reports whether anything was removed.
func (l *Ledger) Remove(target string) (bool, error) {
	k := ledgerKey(target)
	kept := l.discounts[:0]
	removed := false
	for _, d := range l.discounts {
		if ledgerKey(d.Target) == k {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	l.discounts = kept
	if !removed {
		return false, nil
	}
	if err := l.repo.SaveDiscounts(l.List()); err != nil {
		return true, fmt.Errorf("discount: persist discounts: %w", err)
	}
	return true, nil
}

// List returns copies of all active discount records.
func (l *Ledger) List() []Discount {
	out := make([]Discount, len(l.discounts))
	copy(out, l.discounts)
	return out
}

func (l *Ledger) snapshotOriginals() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(l.originals))
	for k, v := range l.originals {
		out[k] = v
	}
	return out
}
