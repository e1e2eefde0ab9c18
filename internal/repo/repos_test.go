package repo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/retail-console/internal/catalog"
	"github.com/noah-isme/retail-console/internal/coupon"
	"github.com/noah-isme/retail-console/internal/discount"
	"github.com/noah-isme/retail-console/internal/repo"
	"github.com/noah-isme/retail-console/internal/sale"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestItemsRoundTrip(t *testing.T) {
	r := repo.NewItems(filepath.Join(t.TempDir(), "items.csv"), zerolog.Nop())
	in := []catalog.Item{
		{Name: "Tennis Ball", Price: amount("29.99"), Department: "Tennis", Quantity: 10, StoreID: "s-1"},
		{Name: "Football", Price: amount("24.99"), Department: "Football", Quantity: 5, StoreID: "s-1"},
	}
	require.NoError(t, r.SaveAll(in))

	out, err := r.LoadAll()
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Tennis Ball", out[0].Name)
	require.True(t, out[0].Price.Equal(amount("29.99")))
	require.Equal(t, 10, out[0].Quantity)
	require.Equal(t, "s-1", out[0].StoreID)
}

func TestItemsSkipsCorruptRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	raw := "name,price,department,quantity,store_id\n" +
		"Tennis Ball,29.99,Tennis,10,s-1\n" +
		"Bad Price,not-a-number,Tennis,4,s-1\n" +
		"Bad Qty,9.99,Tennis,minus,s-1\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	out, err := repo.NewItems(path, zerolog.Nop()).LoadAll()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Tennis Ball", out[0].Name)
}

func TestDiscountsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := repo.NewDiscounts(filepath.Join(dir, "discounts.csv"), filepath.Join(dir, "original_prices.csv"), zerolog.Nop())

	require.NoError(t, r.SaveDiscounts([]discount.Discount{
		{Target: "Tennis", Value: decimal.NewFromInt(10), Kind: discount.Percentage},
		{Target: discount.TargetStoreWide, Value: decimal.NewFromInt(5), Kind: discount.Fixed},
	}))
	discounts, err := r.LoadDiscounts()
	require.NoError(t, err)
	require.Len(t, discounts, 2)
	require.Equal(t, discount.Percentage, discounts[0].Kind)

	require.NoError(t, r.SaveOriginalPrices(map[string]decimal.Decimal{"tennis ball": amount("29.99")}))
	originals, err := r.LoadOriginalPrices()
	require.NoError(t, err)
	require.True(t, originals["tennis ball"].Equal(amount("29.99")))
}

func TestCouponsRoundTrip(t *testing.T) {
	r := repo.NewCoupons(filepath.Join(t.TempDir(), "coupons.csv"), zerolog.Nop())
	expires := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.SaveAll([]coupon.Coupon{
		{Code: "SAVE10", Kind: discount.Percentage, Value: decimal.NewFromInt(10), ExpiresAt: expires},
	}))

	out, err := r.LoadAll()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "SAVE10", out[0].Code)
	require.True(t, out[0].ExpiresAt.Equal(expires))
}

func TestReceiptsAppendAndLoad(t *testing.T) {
	r := repo.NewReceipts(filepath.Join(t.TempDir(), "receipts.csv"), zerolog.Nop())
	date := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	in := sale.Receipt{
		ID:         "rcpt-1",
		CustomerID: "cust-1",
		CashierID:  "cash-1",
		Lines: []sale.ReceiptLine{
			{Name: "Football", Qty: 2, UnitPrice: amount("24.99")},
			{Name: "Whistle", Qty: 1, UnitPrice: amount("4.50")},
		},
		Total: amount("54.48"),
		Date:  date,
	}
	require.NoError(t, r.Append(in))

	out, err := r.LoadAll()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, in.ID, out[0].ID)
	require.Equal(t, in.CustomerID, out[0].CustomerID)
	require.Len(t, out[0].Lines, 2)
	require.Equal(t, "Football", out[0].Lines[0].Name)
	require.Equal(t, 2, out[0].Lines[0].Qty)
	require.True(t, out[0].Total.Equal(in.Total))
	require.True(t, out[0].Date.Equal(date))
}

func TestReceiptsNegativeTotalSurvivesRoundTrip(t *testing.T) {
	r := repo.NewReceipts(filepath.Join(t.TempDir(), "receipts.csv"), zerolog.Nop())
	in := sale.Receipt{
		ID:         "rcpt-2",
		CustomerID: "cust-1",
		CashierID:  "cash-1",
		Lines:      []sale.ReceiptLine{{Name: "Football", Qty: 1, UnitPrice: amount("24.99")}},
		Total:      amount("-24.99"),
		Date:       time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.Append(in))

	out, err := r.LoadAll()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, out[0].Total.IsNegative())
}
