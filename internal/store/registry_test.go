package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/retail-console/internal/store"
)

type memRepo struct {
	stores []store.Store
}

func (m *memRepo) LoadAll() ([]store.Store, error) { return m.stores, nil }

func (m *memRepo) SaveAll(stores []store.Store) error {
	m.stores = stores
	return nil
}

func TestCreateGetList(t *testing.T) {
	r, err := store.NewRegistry(&memRepo{})
	require.NoError(t, err)

	s, err := r.Create("Downtown", "West")
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	require.Equal(t, "Downtown", got.Name)

	_, err = r.Get("missing")
	require.ErrorIs(t, err, store.ErrStoreNotFound)

	_, err = r.Create("Airport", "East")
	require.NoError(t, err)
	list := r.List()
	require.Len(t, list, 2)
	require.Equal(t, "Airport", list[0].Name)
}

func TestCreateRequiresName(t *testing.T) {
	r, err := store.NewRegistry(&memRepo{})
	require.NoError(t, err)
	_, err = r.Create("  ", "West")
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	r, err := store.NewRegistry(&memRepo{})
	require.NoError(t, err)
	s, err := r.Create("Downtown", "West")
	require.NoError(t, err)

	removed, err := r.Remove(s.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = r.Remove(s.ID)
	require.NoError(t, err)
	require.False(t, removed)
}
