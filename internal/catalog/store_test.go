package catalog_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/retail-console/internal/catalog"
)

type memRepo struct {
	items []catalog.Item
	saves int
}

func (m *memRepo) LoadAll() ([]catalog.Item, error) { return m.items, nil }

func (m *memRepo) SaveAll(items []catalog.Item) error {
	m.items = items
	m.saves++
	return nil
}

func newStore(t *testing.T, items ...catalog.Item) (*catalog.Store, *memRepo) {
	t.Helper()
	repo := &memRepo{items: items}
	s, err := catalog.NewStore(repo, zerolog.Nop())
	require.NoError(t, err)
	return s, repo
}

func TestUpsertAndGetCaseInsensitive(t *testing.T) {
	s, repo := newStore(t)
	err := s.Upsert(catalog.Item{Name: "Tennis Ball", Price: decimal.RequireFromString("29.99"), Department: "Tennis", Quantity: 10})
	require.NoError(t, err)
	require.Equal(t, 1, repo.saves)

	it, ok := s.Get("tennis ball")
	require.True(t, ok)
	require.Equal(t, "Tennis Ball", it.Name)
	require.True(t, it.Price.Equal(decimal.RequireFromString("29.99")))
}

func TestUpsertRejectsInvalidInput(t *testing.T) {
	s, _ := newStore(t)
	err := s.Upsert(catalog.Item{Name: "", Price: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)

	err = s.Upsert(catalog.Item{Name: "Bat", Price: decimal.Zero})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)

	err = s.Upsert(catalog.Item{Name: "Bat", Price: decimal.NewFromInt(1), Quantity: -1})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)
}

func TestByDepartment(t *testing.T) {
	s, _ := newStore(t,
		catalog.Item{Name: "Football", Price: decimal.NewFromInt(25), Department: "Football", Quantity: 3},
		catalog.Item{Name: "Goal Net", Price: decimal.NewFromInt(80), Department: "Football", Quantity: 1},
		catalog.Item{Name: "Racket", Price: decimal.NewFromInt(90), Department: "Tennis", Quantity: 2},
	)
	football := s.ByDepartment("football")
	require.Len(t, football, 2)
	require.Empty(t, s.ByDepartment("Bowling"))
}

func TestAdjustQuantityGuardsStock(t *testing.T) {
	s, _ := newStore(t, catalog.Item{Name: "Football", Price: decimal.NewFromInt(25), Department: "Football", Quantity: 5})

	require.NoError(t, s.AdjustQuantity("Football", -3))
	it, _ := s.Get("Football")
	require.Equal(t, 2, it.Quantity)

	err := s.AdjustQuantity("Football", -3)
	require.ErrorIs(t, err, catalog.ErrInsufficientStock)
	it, _ = s.Get("Football")
	require.Equal(t, 2, it.Quantity)

	err = s.AdjustQuantity("Ghost", 1)
	require.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestSetPriceAllowsNonPositiveResult(t *testing.T) {
	// Discount application writes the computed price verbatim; the catalog
	// does not second-guess it.
	s, _ := newStore(t, catalog.Item{Name: "Puck", Price: decimal.NewFromInt(3), Department: "Hockey", Quantity: 1})
	require.NoError(t, s.SetPrice("Puck", decimal.NewFromInt(-2)))
	it, _ := s.Get("Puck")
	require.True(t, it.Price.Equal(decimal.NewFromInt(-2)))
}

func TestRemove(t *testing.T) {
	s, _ := newStore(t, catalog.Item{Name: "Puck", Price: decimal.NewFromInt(3), Department: "Hockey", Quantity: 1})
	removed, err := s.Remove("puck")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = s.Remove("puck")
	require.NoError(t, err)
	require.False(t, removed)

	if _, ok := s.Get("Puck"); ok {
		t.Fatal("expected item to be gone")
	}
}

func TestPersistErrorsSurface(t *testing.T) {
	repo := &failingRepo{}
	s, err := catalog.NewStore(repo, zerolog.Nop())
	require.NoError(t, err)
	err = s.Upsert(catalog.Item{Name: "Bat", Price: decimal.NewFromInt(10), Department: "Baseball"})
	require.Error(t, err)
}

type failingRepo struct{}

func (f *failingRepo) LoadAll() ([]catalog.Item, error) { return nil, nil }

func (f *failingRepo) SaveAll([]catalog.Item) error { return errors.New("disk full") }
