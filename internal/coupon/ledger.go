// Package coupon manages time-bounded checkout codes that reduce a cart
// subtotal, independent of item-level discounts.
package coupon

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/discount"
)

// ErrInvalidInput is returned when the provided coupon payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Coupon is a registered checkout code. Immutable once created except via
// removal.
type Coupon struct {
	Code      string
	Kind      discount.Kind
	Value     decimal.Decimal
	ExpiresAt time.Time
}

// Repository persists the coupon table wholesale on mutation.
type Repository interface {
	LoadAll() ([]Coupon, error)
	SaveAll([]Coupon) error
}

// Ledger owns the registered coupons, keyed by code (case-insensitive).
type Ledger struct {
	repo    Repository
	coupons map[string]Coupon
	now     func() time.Time
}

// NewLedger loads the coupon table from the repository.
func NewLedger(repo Repository, now func() time.Time) (*Ledger, error) {
	if repo == nil {
		return nil, errors.New("coupon: repository is required")
	}
	if now == nil {
		now = time.Now
	}
	loaded, err := repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("coupon: load coupons: %w", err)
	}
	coupons := make(map[string]Coupon, len(loaded))
	for _, c := range loaded {
		coupons[codeKey(c.Code)] = c
	}
	return &Ledger{repo: repo, coupons: coupons, now: now}, nil
}

func codeKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Add registers a coupon and persists the table.
func (l *Ledger) Add(c Coupon) error {
	c.Code = strings.TrimSpace(c.Code)
	if c.Code == "" {
		return fmt.Errorf("coupon: code is required: %w", ErrInvalidInput)
	}
	if c.Kind != discount.Percentage && c.Kind != discount.Fixed {
		return fmt.Errorf("coupon: unknown discount kind %q: %w", c.Kind, ErrInvalidInput)
	}
	if c.Value.IsNegative() {
		return fmt.Errorf("coupon: value must not be negative: %w", ErrInvalidInput)
	}
	l.coupons[codeKey(c.Code)] = c
	return l.persist()
}

// FindByCode looks up a coupon regardless of validity.
func (l *Ledger) FindByCode(code string) (Coupon, bool) {
	c, ok := l.coupons[codeKey(code)]
	return c, ok
}

// IsValid reports whether the code is registered and not yet expired.
func (l *Ledger) IsValid(code string) bool {
	c, ok := l.coupons[codeKey(code)]
	if !ok {
		return false
	}
	return !l.now().After(c.ExpiresAt)
}

// Preview returns the coupon's discount value when the code is valid. The
// second return distinguishes "not applicable" from a coupon that is
// literally worth zero.
func (l *Ledger) Preview(code string) (decimal.Decimal, bool) {
	if !l.IsValid(code) {
		return decimal.Zero, false
	}
	return l.coupons[codeKey(code)].Value, true
}

// Remove deletes a coupon; it reports whether anything was removed.
func (l *Ledger) Remove(code string) (bool, error) {
	if _, ok := l.coupons[codeKey(code)]; !ok {
		return false, nil
	}
	delete(l.coupons, codeKey(code))
	return true, l.persist()
}

// List returns all registered coupons sorted by code.
func (l *Ledger) List() []Coupon {
	out := make([]Coupon, 0, len(l.coupons))
	for _, c := range l.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return codeKey(out[i].Code) < codeKey(out[j].Code) })
	return out
}

func (l *Ledger) persist() error {
	if err := l.repo.SaveAll(l.List()); err != nil {
		return fmt.Errorf("coupon: persist: %w", err)
	}
	return nil
}
