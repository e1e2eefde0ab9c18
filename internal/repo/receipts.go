package repo

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/sale"
	"github.com/noah-isme/retail-console/internal/storage/csvfile"
)

var receiptsHeader = []string{"id", "customer_id", "cashier_id", "lines", "total", "date"}

// lineSeparator joins receipt lines inside the single CSV "lines" field.
const lineSeparator = " | "

// Receipts is the append-only CSV receipt trail. It implements
// sale.ReceiptLog.
type Receipts struct {
	table csvfile.Table
	log   zerolog.Logger
}

// NewReceipts builds a receipt repository over the given file path.
func NewReceipts(path string, log zerolog.Logger) *Receipts {
	return &Receipts{
		table: csvfile.Table{Path: path, Header: receiptsHeader, Logger: log},
		log:   log,
	}
}

// Append implements sale.ReceiptLog.
func (r *Receipts) Append(receipt sale.Receipt) error {
	return r.table.Append([]string{
		receipt.ID,
		receipt.CustomerID,
		receipt.CashierID,
		receipt.Summary(),
		receipt.Total.String(),
		receipt.Date.Format(time.RFC3339),
	})
}

// LoadAll implements sale.ReceiptLog.
func (r *Receipts) LoadAll() ([]sale.Receipt, error) {
	rows, err := r.table.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]sale.Receipt, 0, len(rows))
	for _, row := range rows {
		total, err := decimal.NewFromString(row[4])
		if err != nil {
			r.log.Warn().Str("receipt", row[0]).Str("total", row[4]).Msg("skip receipt with bad total")
			continue
		}
		date, err := time.Parse(time.RFC3339, row[5])
		if err != nil {
			r.log.Warn().Str("receipt", row[0]).Str("date", row[5]).Msg("skip receipt with bad date")
			continue
		}
		lines, err := parseLines(row[3])
		if err != nil {
			r.log.Warn().Str("receipt", row[0]).Err(err).Msg("skip receipt with bad lines")
			continue
		}
		out = append(out, sale.Receipt{
			ID:         row[0],
			CustomerID: row[1],
			CashierID:  row[2],
			Lines:      lines,
			Total:      total,
			Date:       date,
		})
	}
	return out, nil
}

func parseLines(field string) ([]sale.ReceiptLine, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, lineSeparator)
	lines := make([]sale.ReceiptLine, 0, len(parts))
	for _, p := range parts {
		l, err := sale.ParseLine(p)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}
