package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/money"
)

// ReceiptLine is one purchased (or returned) item on a receipt.
type ReceiptLine struct {
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
}

// Receipt is the append-only record of a completed transaction. Total is
// negative for returns.
type Receipt struct {
	ID         string
	CustomerID string
	CashierID  string
	Lines      []ReceiptLine
	Total      decimal.Decimal
	Date       time.Time
}

// ReceiptLog appends and reads the persisted receipt trail.
type ReceiptLog interface {
	Append(Receipt) error
	LoadAll() ([]Receipt, error)
}

// Summary renders the receipt's lines as display text.
func (r Receipt) Summary() string {
	parts := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		parts = append(parts, FormatLine(l))
	}
	return strings.Join(parts, " | ")
}

// FormatLine renders a receipt line, e.g. "2x Football @ $24.99".
func FormatLine(l ReceiptLine) string {
	return fmt.Sprintf("%dx %s @ %s", l.Qty, l.Name, money.Format(l.UnitPrice))
}

// ParseLine is the inverse of FormatLine, used by the flat-file repository.
func ParseLine(s string) (ReceiptLine, error) {
	trimmed := strings.TrimSpace(s)
	sep := strings.Index(trimmed, "x ")
	if sep < 1 {
		return ReceiptLine{}, fmt.Errorf("malformed receipt line %q", s)
	}
	var qty int
	if _, err := fmt.Sscanf(trimmed[:sep], "%d", &qty); err != nil {
		return ReceiptLine{}, fmt.Errorf("malformed receipt line %q: %w", s, err)
	}
	rest := trimmed[sep+2:]
	at := strings.LastIndex(rest, " @ ")
	if at < 1 {
		return ReceiptLine{}, fmt.Errorf("malformed receipt line %q", s)
	}
	price, err := money.Parse(rest[at+3:])
	if err != nil {
		return ReceiptLine{}, fmt.Errorf("malformed receipt line %q: %w", s, err)
	}
	return ReceiptLine{Name: rest[:at], Qty: qty, UnitPrice: price}, nil
}
