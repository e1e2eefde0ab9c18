package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrItemNotFound indicates the requested item is not in the catalog.
var ErrItemNotFound = errors.New("item not found")

// ErrInsufficientStock is returned when a quantity adjustment would take an
// item below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidInput is returned when the provided item payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Item is a catalog entry. Name is the unique key within a store; Price is
// the currently charged price and already reflects any applied discount.
type Item struct {
	Name       string
	Price      decimal.Decimal
	Department string
	Quantity   int
	StoreID    string
}

// Repository persists the catalog wholesale on every mutation.
type Repository interface {
	LoadAll() ([]Item, error)
	SaveAll([]Item) error
}

// Store owns the in-memory catalog for a single retail store. It is the
// single writer for item records; callers mutate items only through its
// methods, each of which persists the full catalog.
type Store struct {
	repo  Repository
	items map[string]*Item
	log   zerolog.Logger
}

// NewStore loads the catalog from the repository.
func NewStore(repo Repository, log zerolog.Logger) (*Store, error) {
	if repo == nil {
		return nil, errors.New("catalog: repository is required")
	}
	loaded, err := repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog: load items: %w", err)
	}
	items := make(map[string]*Item, len(loaded))
	for _, it := range loaded {
		copied := it
		items[key(it.Name)] = &copied
	}
	return &Store{repo: repo, items: items, log: log}, nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns a copy of the named item.
func (s *Store) Get(name string) (Item, bool) {
	it, ok := s.items[key(name)]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// ByDepartment returns copies of every item in the department, sorted by name.
func (s *Store) ByDepartment(department string) []Item {
	var out []Item
	for _, it := range s.items {
		if strings.EqualFold(it.Department, strings.TrimSpace(department)) {
			out = append(out, *it)
		}
	}
	sortItems(out)
	return out
}

// All returns copies of every item, sorted by name.
func (s *Store) All() []Item {
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	sortItems(out)
	return out
}

// Count reports the number of items in the catalog.
func (s *Store) Count() int {
	return len(s.items)
}

// Upsert inserts or replaces an item and persists the catalog.
func (s *Store) Upsert(it Item) error {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return fmt.Errorf("catalog: name is required: %w", ErrInvalidInput)
	}
	if !it.Price.IsPositive() {
		return fmt.Errorf("catalog: price must be positive: %w", ErrInvalidInput)
	}
	if it.Quantity < 0 {
		return fmt.Errorf("catalog: quantity must not be negative: %w", ErrInvalidInput)
	}
	copied := it
	s.items[key(it.Name)] = &copied
	return s.persist()
}

// Remove deletes an item; it reports whether anything was removed.
func (s *Store) Remove(name string) (bool, error) {
	if _, ok := s.items[key(name)]; !ok {
		return false, nil
	}
	delete(s.items, key(name))
	return true, s.persist()
}

// SetPrice overwrites an item's stored price and persists the catalog.
// Discount application may push the stored price to zero or below; upstream
// input validation is the only guard against that, so no floor is applied
// here.
func (s *Store) SetPrice(name string, price decimal.Decimal) error {
	it, ok := s.items[key(name)]
	if !ok {
		return fmt.Errorf("catalog: %s: %w", name, ErrItemNotFound)
	}
	it.Price = price
	return s.persist()
}

// AdjustQuantity adds delta (which may be negative) to an item's stock.
func (s *Store) AdjustQuantity(name string, delta int) error {
	it, ok := s.items[key(name)]
	if !ok {
		return fmt.Errorf("catalog: %s: %w", name, ErrItemNotFound)
	}
	next := it.Quantity + delta
	if next < 0 {
		return fmt.Errorf("catalog: %s has %d in stock, need %d: %w", it.Name, it.Quantity, -delta, ErrInsufficientStock)
	}
	it.Quantity = next
	return s.persist()
}

func (s *Store) persist() error {
	if err := s.repo.SaveAll(s.All()); err != nil {
		s.log.Error().Err(err).Msg("persist catalog")
		return fmt.Errorf("catalog: persist: %w", err)
	}
	return nil
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}
