package discount_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/retail-console/internal/discount"
)

type memLedgerRepo struct {
	discounts []discount.Discount
	originals map[string]decimal.Decimal
}

func (m *memLedgerRepo) LoadDiscounts() ([]discount.Discount, error) { return m.discounts, nil }

func (m *memLedgerRepo) SaveDiscounts(d []discount.Discount) error {
	m.discounts = d
	return nil
}

func (m *memLedgerRepo) LoadOriginalPrices() (map[string]decimal.Decimal, error) {
	return m.originals, nil
}

func (m *memLedgerRepo) SaveOriginalPrices(o map[string]decimal.Decimal) error {
	m.originals = o
	return nil
}

func newLedger(t *testing.T) (*discount.Ledger, *memLedgerRepo) {
	t.Helper()
	repo := &memLedgerRepo{}
	l, err := discount.NewLedger(repo)
	require.NoError(t, err)
	return l, repo
}

func TestCaptureOriginalFirstWins(t *testing.T) {
	l, repo := newLedger(t)
	require.NoError(t, l.CaptureOriginal("Tennis Ball", decimal.RequireFromString("29.99")))
	require.NoError(t, l.CaptureOriginal("Tennis Ball", decimal.RequireFromString("26.99")))

	price, err := l.OriginalPrice("tennis ball")
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.RequireFromString("29.99")))
	require.Len(t, repo.originals, 1)
}

func TestOriginalPriceMissing(t *testing.T) {
	l, _ := newLedger(t)
	_, err := l.OriginalPrice("Ghost")
	require.ErrorIs(t, err, discount.ErrNoOriginalPrice)
}

func TestRestoreDeletesCapture(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.CaptureOriginal("Football", decimal.NewFromInt(25)))

	price, err := l.Restore("football")
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.NewFromInt(25)))

	_, err = l.Restore("football")
	require.ErrorIs(t, err, discount.ErrNoOriginalPrice)
}

func TestRemoveIsCaseInsensitiveAndRemovesAllMatches(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.Add("Tennis", decimal.NewFromInt(10), discount.Percentage))
	require.NoError(t, l.Add("tennis", decimal.NewFromInt(5), discount.Fixed))
	require.NoError(t, l.Add("Football", decimal.NewFromInt(5), discount.Fixed))

	removed, err := l.Remove("TENNIS")
	require.NoError(t, err)
	require.True(t, removed)
	require.Len(t, l.List(), 1)
	require.Equal(t, "Football", l.List()[0].Target)

	removed, err = l.Remove("TENNIS")
	require.NoError(t, err)
	require.False(t, removed)
}
