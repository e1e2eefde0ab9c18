package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/retail-console/internal/app"
	"github.com/noah-isme/retail-console/internal/catalog"
	"github.com/noah-isme/retail-console/internal/common"
	"github.com/noah-isme/retail-console/internal/coupon"
	"github.com/noah-isme/retail-console/internal/discount"
	"github.com/noah-isme/retail-console/internal/money"
	"github.com/noah-isme/retail-console/internal/sale"
)

// console is the interactive boundary layer. It prompts, validates, reports
// errors as messages, and delegates everything else to the services.
type console struct {
	deps *app.Dependencies
	in   *bufio.Scanner
	out  io.Writer
}

func newConsole(deps *app.Dependencies, in io.Reader, out io.Writer) *console {
	return &console{deps: deps, in: bufio.NewScanner(in), out: out}
}

func (c *console) run(ctx context.Context) error {
	for {
		c.printf("\n=== Retail Console ===\n")
		c.printf("1) Inventory\n2) Discounts\n3) Coupons\n4) Sell\n5) Return\n6) Stores\n0) Exit\n")
		switch c.prompt("choice") {
		case "1":
			c.inventoryMenu()
		case "2":
			c.discountMenu(ctx)
		case "3":
			c.couponMenu()
		case "4":
			c.sellMenu(ctx)
		case "5":
			c.returnMenu(ctx)
		case "6":
			c.storeMenu()
		case "0", "q", "exit":
			return nil
		default:
			c.printf("unknown choice\n")
		}
	}
}

func (c *console) inventoryMenu() {
	c.printf("1) List items\n2) Add/update item\n3) Remove item\n")
	switch c.prompt("choice") {
	case "1":
		for _, it := range c.deps.Items.All() {
			c.printf("%-24s %-12s %10s  qty %d\n", it.Name, it.Department, money.Format(it.Price), it.Quantity)
		}
	case "2":
		in := itemInput{
			Name:       c.prompt("name"),
			Department: c.prompt("department"),
		}
		price, err := money.Parse(c.prompt("price"))
		if err != nil {
			c.report(err)
			return
		}
		qty, err := strconv.Atoi(c.prompt("quantity"))
		if err != nil {
			c.report(fmt.Errorf("quantity must be a whole number: %w", err))
			return
		}
		in.Price = price
		in.Quantity = qty
		if err := common.ValidateStruct(in); err != nil {
			c.report(err)
			return
		}
		if !price.IsPositive() {
			c.report(errors.New("price must be positive"))
			return
		}
		c.report(c.deps.Items.Upsert(catalog.Item{
			Name:       in.Name,
			Price:      in.Price,
			Department: in.Department,
			Quantity:   in.Quantity,
			StoreID:    c.deps.Config.StoreID,
		}))
	case "3":
		removed, err := c.deps.Items.Remove(c.prompt("name"))
		if err != nil {
			c.report(err)
			return
		}
		if !removed {
			c.printf("nothing removed\n")
		}
	}
}

func (c *console) discountMenu(ctx context.Context) {
	c.printf("1) Apply to item\n2) Apply to department\n3) Apply store-wide\n4) Remove\n5) List\n")
	choice := c.prompt("choice")
	switch choice {
	case "1", "2", "3":
		kind, err := c.promptKind()
		if err != nil {
			c.report(err)
			return
		}
		value, err := c.promptDiscountValue(kind)
		if err != nil {
			c.report(err)
			return
		}
		switch choice {
		case "1":
			c.report(c.deps.Pricing.ApplyToItem(ctx, c.prompt("item name"), value, kind))
		case "2":
			c.report(c.deps.Pricing.ApplyToDepartment(ctx, c.prompt("department"), value, kind))
		case "3":
			c.report(c.deps.Pricing.ApplyStoreWide(ctx, value, kind))
		}
	case "4":
		c.report(c.deps.Pricing.Remove(ctx, c.prompt("target (item, department, or store-wide)")))
	case "5":
		for _, d := range c.deps.Discounts.List() {
			c.printf("%-24s %-12s %s\n", d.Target, d.Kind, d.Value.String())
		}
	}
}

func (c *console) couponMenu() {
	c.printf("1) Add coupon\n2) Remove coupon\n3) Preview coupon\n4) List\n")
	switch c.prompt("choice") {
	case "1":
		in := couponInput{Code: c.prompt("code")}
		kind, err := c.promptKind()
		if err != nil {
			c.report(err)
			return
		}
		value, err := c.promptDiscountValue(kind)
		if err != nil {
			c.report(err)
			return
		}
		days, err := strconv.Atoi(c.prompt("valid for days"))
		if err != nil || days <= 0 {
			c.report(errors.New("days must be a positive whole number"))
			return
		}
		in.Days = days
		if err := common.ValidateStruct(in); err != nil {
			c.report(err)
			return
		}
		c.report(c.deps.Coupons.Add(coupon.Coupon{
			Code:      in.Code,
			Kind:      kind,
			Value:     value,
			ExpiresAt: time.Now().AddDate(0, 0, in.Days),
		}))
	case "2":
		removed, err := c.deps.Coupons.Remove(c.prompt("code"))
		if err != nil {
			c.report(err)
			return
		}
		if !removed {
			c.printf("nothing removed\n")
		}
	case "3":
		value, ok := c.deps.Coupons.Preview(c.prompt("code"))
		if !ok {
			c.printf("coupon is not applicable\n")
			return
		}
		c.printf("coupon value: %s\n", value.String())
	case "4":
		for _, cp := range c.deps.Coupons.List() {
			c.printf("%-16s %-12s %-8s expires %s\n", cp.Code, cp.Kind, cp.Value.String(), cp.ExpiresAt.Format("2006-01-02"))
		}
	}
}

func (c *console) sellMenu(ctx context.Context) {
	customer := c.prompt("customer id")
	cashier := c.prompt("cashier id")
	lines, err := c.promptLines()
	if err != nil {
		c.report(err)
		return
	}
	method := c.prompt("payment method")
	code := c.prompt("coupon code (blank for none)")
	receipt, err := c.deps.Sales.ProcessSale(ctx, customer, cashier, lines, method, code)
	if err != nil {
		c.report(err)
		return
	}
	c.printf("receipt %s  total %s\n%s\n", receipt.ID, money.Format(receipt.Total), receipt.Summary())
}

func (c *console) returnMenu(ctx context.Context) {
	customer := c.prompt("customer id")
	cashier := c.prompt("cashier id")
	lines, err := c.promptLines()
	if err != nil {
		c.report(err)
		return
	}
	receipt, err := c.deps.Sales.HandleReturn(ctx, customer, cashier, lines)
	if err != nil {
		c.report(err)
		return
	}
	c.printf("refund receipt %s  total %s\n", receipt.ID, money.Format(receipt.Total))
}

func (c *console) storeMenu() {
	c.printf("1) List stores\n2) Create store\n")
	switch c.prompt("choice") {
	case "1":
		for _, s := range c.deps.Stores.List() {
			c.printf("%-36s %-24s %s\n", s.ID, s.Name, s.Region)
		}
	case "2":
		s, err := c.deps.Stores.Create(c.prompt("name"), c.prompt("region"))
		if err != nil {
			c.report(err)
			return
		}
		c.printf("created store %s\n", s.ID)
	}
}

func (c *console) promptLines() ([]sale.Line, error) {
	var lines []sale.Line
	for {
		name := c.prompt("item name (blank to finish)")
		if name == "" {
			break
		}
		qty, err := strconv.Atoi(c.prompt("quantity"))
		if err != nil || qty <= 0 {
			return nil, errors.New("quantity must be a positive whole number")
		}
		lines = append(lines, sale.Line{ItemName: name, Qty: qty})
	}
	return lines, nil
}

func (c *console) promptKind() (discount.Kind, error) {
	switch strings.ToUpper(c.prompt("type (PERCENTAGE/FIXED)")) {
	case "PERCENTAGE", "P":
		return discount.Percentage, nil
	case "FIXED", "F":
		return discount.Fixed, nil
	default:
		return "", errors.New("type must be PERCENTAGE or FIXED")
	}
}

// promptDiscountValue enforces the upstream validation the pricing engine
// relies on: values are positive, and percentages stay at or below 100.
func (c *console) promptDiscountValue(kind discount.Kind) (decimal.Decimal, error) {
	value, err := money.Parse(c.prompt("value"))
	if err != nil {
		return decimal.Zero, err
	}
	if !value.IsPositive() {
		return decimal.Zero, errors.New("value must be positive")
	}
	if kind == discount.Percentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, errors.New("percentage must not exceed 100")
	}
	return value, nil
}

func (c *console) prompt(label string) string {
	c.printf("%s> ", label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// report prints an error as an operator-facing message; nil prints ok.
func (c *console) report(err error) {
	if err == nil {
		c.printf("ok\n")
		return
	}
	c.printf("error: %v\n", err)
	c.deps.Logger.Debug().Err(err).Msg("operation failed")
}
