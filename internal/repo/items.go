// Package repo implements the flat-file repositories behind the catalog,
// the discount and coupon ledgers, the receipt trail, the store registry,
// and the event audit log. One CSV table per entity type; every mutation
// rewrites the table wholesale. Malformed rows are logged and skipped.
package repo

import (
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/catalog"
	"github.com/noah-isme/retail-console/internal/storage/csvfile"
)

var itemsHeader = []string{"name", "price", "department", "quantity", "store_id"}

// Items is the CSV-backed catalog repository.
type Items struct {
	table csvfile.Table
	log   zerolog.Logger
}

// NewItems builds an item repository over the given file path.
func NewItems(path string, log zerolog.Logger) *Items {
	return &Items{
		table: csvfile.Table{Path: path, Header: itemsHeader, Logger: log},
		log:   log,
	}
}

// LoadAll implements catalog.Repository.
func (r *Items) LoadAll() ([]catalog.Item, error) {
	rows, err := r.table.LoadAll()
	if err != nil {
		return nil, err
	}
	items := make([]catalog.Item, 0, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row[1])
		if err != nil {
			r.log.Warn().Str("item", row[0]).Str("price", row[1]).Msg("skip item with bad price")
			continue
		}
		qty, err := strconv.Atoi(row[3])
		if err != nil || qty < 0 {
			r.log.Warn().Str("item", row[0]).Str("quantity", row[3]).Msg("skip item with bad quantity")
			continue
		}
		items = append(items, catalog.Item{
			Name:       row[0],
			Price:      price,
			Department: row[2],
			Quantity:   qty,
			StoreID:    row[4],
		})
	}
	return items, nil
}

// SaveAll implements catalog.Repository.
func (r *Items) SaveAll(items []catalog.Item) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			it.Price.String(),
			it.Department,
			strconv.Itoa(it.Quantity),
			it.StoreID,
		})
	}
	return r.table.SaveAll(rows)
}
