package repo

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/coupon"
	"github.com/noah-isme/retail-console/internal/discount"
	"github.com/noah-isme/retail-console/internal/storage/csvfile"
)

var couponsHeader = []string{"code", "discount_type", "discount_value", "expires_at"}

// Coupons is the CSV-backed coupon repository.
type Coupons struct {
	table csvfile.Table
	log   zerolog.Logger
}

// NewCoupons builds a coupon repository over the given file path.
func NewCoupons(path string, log zerolog.Logger) *Coupons {
	return &Coupons{
		table: csvfile.Table{Path: path, Header: couponsHeader, Logger: log},
		log:   log,
	}
}

// LoadAll implements coupon.Repository.
func (r *Coupons) LoadAll() ([]coupon.Coupon, error) {
	rows, err := r.table.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]coupon.Coupon, 0, len(rows))
	for _, row := range rows {
		value, err := decimal.NewFromString(row[2])
		if err != nil {
			r.log.Warn().Str("code", row[0]).Str("value", row[2]).Msg("skip coupon with bad value")
			continue
		}
		expires, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			r.log.Warn().Str("code", row[0]).Str("expires_at", row[3]).Msg("skip coupon with bad expiry")
			continue
		}
		kind := discount.Kind(row[1])
		if kind != discount.Percentage && kind != discount.Fixed {
			r.log.Warn().Str("code", row[0]).Str("discount_type", row[1]).Msg("skip coupon with unknown type")
			continue
		}
		out = append(out, coupon.Coupon{
			Code:      row[0],
			Kind:      kind,
			Value:     value,
			ExpiresAt: expires,
		})
	}
	return out, nil
}

// SaveAll implements coupon.Repository.
func (r *Coupons) SaveAll(coupons []coupon.Coupon) error {
	rows := make([][]string, 0, len(coupons))
	for _, c := range coupons {
		rows = append(rows, []string{
			c.Code,
			string(c.Kind),
			c.Value.String(),
			c.ExpiresAt.Format(time.RFC3339),
		})
	}
	return r.table.SaveAll(rows)
}
