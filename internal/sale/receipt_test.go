package sale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/retail-console/internal/sale"
)

func TestFormatAndParseLine(t *testing.T) {
	line := sale.ReceiptLine{Name: "Tennis Ball", Qty: 2, UnitPrice: amount("29.99")}
	text := sale.FormatLine(line)
	require.Equal(t, "2x Tennis Ball @ $29.99", text)

	parsed, err := sale.ParseLine(text)
	require.NoError(t, err)
	require.Equal(t, line.Name, parsed.Name)
	require.Equal(t, line.Qty, parsed.Qty)
	require.True(t, parsed.UnitPrice.Equal(line.UnitPrice))
}

func TestParseLineRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "Football", "x Football @ $1.00", "2x Football"} {
		if _, err := sale.ParseLine(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSummaryJoinsLines(t *testing.T) {
	r := sale.Receipt{Lines: []sale.ReceiptLine{
		{Name: "Football", Qty: 2, UnitPrice: amount("24.99")},
		{Name: "Whistle", Qty: 1, UnitPrice: amount("4.50")},
	}}
	require.Equal(t, "2x Football @ $24.99 | 1x Whistle @ $4.50", r.Summary())
}
