package repo

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/discount"
	"github.com/noah-isme/retail-console/internal/storage/csvfile"
)

var (
	discountsHeader = []string{"target", "value", "type"}
	originalsHeader = []string{"target", "price"}
)

// Discounts persists the discount table and the original-price table. It
// implements discount.LedgerRepository.
type Discounts struct {
	discounts csvfile.Table
	originals csvfile.Table
	log       zerolog.Logger
}

// NewDiscounts builds the two-table discount repository.
func NewDiscounts(discountsPath, originalsPath string, log zerolog.Logger) *Discounts {
	return &Discounts{
		discounts: csvfile.Table{Path: discountsPath, Header: discountsHeader, Logger: log},
		originals: csvfile.Table{Path: originalsPath, Header: originalsHeader, Logger: log},
		log:       log,
	}
}

// LoadDiscounts implements discount.LedgerRepository.
func (r *Discounts) LoadDiscounts() ([]discount.Discount, error) {
	rows, err := r.discounts.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]discount.Discount, 0, len(rows))
	for _, row := range rows {
		value, err := decimal.NewFromString(row[1])
		if err != nil {
			r.log.Warn().Str("target", row[0]).Str("value", row[1]).Msg("skip discount with bad value")
			continue
		}
		kind := discount.Kind(row[2])
		if kind != discount.Percentage && kind != discount.Fixed {
			r.log.Warn().Str("target", row[0]).Str("type", row[2]).Msg("skip discount with unknown type")
			continue
		}
		out = append(out, discount.Discount{Target: row[0], Value: value, Kind: kind})
	}
	return out, nil
}

// SaveDiscounts implements discount.LedgerRepository.
func (r *Discounts) SaveDiscounts(discounts []discount.Discount) error {
	rows := make([][]string, 0, len(discounts))
	for _, d := range discounts {
		rows = append(rows, []string{d.Target, d.Value.String(), string(d.Kind)})
	}
	return r.discounts.SaveAll(rows)
}

// LoadOriginalPrices implements discount.LedgerRepository.
func (r *Discounts) LoadOriginalPrices() (map[string]decimal.Decimal, error) {
	rows, err := r.originals.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row[1])
		if err != nil {
			r.log.Warn().Str("target", row[0]).Str("price", row[1]).Msg("skip original price with bad value")
			continue
		}
		out[row[0]] = price
	}
	return out, nil
}

// SaveOriginalPrices implements discount.LedgerRepository.
func (r *Discounts) SaveOriginalPrices(originals map[string]decimal.Decimal) error {
	rows := make([][]string, 0, len(originals))
	for target, price := range originals {
		rows = append(rows, []string{target, price.String()})
	}
	return r.originals.SaveAll(rows)
}
