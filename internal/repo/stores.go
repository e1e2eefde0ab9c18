package repo

import (
	"github.com/rs/zerolog"

	"github.com/noah-isme/retail-console/internal/storage/csvfile"
	"github.com/noah-isme/retail-console/internal/store"
)

var storesHeader = []string{"id", "name", "region"}

// Stores is the CSV-backed store registry repository.
type Stores struct {
	table csvfile.Table
}

// NewStores builds a store repository over the given file path.
func NewStores(path string, log zerolog.Logger) *Stores {
	return &Stores{table: csvfile.Table{Path: path, Header: storesHeader, Logger: log}}
}

// LoadAll implements store.Repository.
func (r *Stores) LoadAll() ([]store.Store, error) {
	rows, err := r.table.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]store.Store, 0, len(rows))
	for _, row := range rows {
		out = append(out, store.Store{ID: row[0], Name: row[1], Region: row[2]})
	}
	return out, nil
}

// SaveAll implements store.Repository.
func (r *Stores) SaveAll(stores []store.Store) error {
	rows := make([][]string, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, []string{s.ID, s.Name, s.Region})
	}
	return r.table.SaveAll(rows)
}
