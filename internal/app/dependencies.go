package app

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/retail-console/internal/catalog"
	"github.com/noah-isme/retail-console/internal/config"
	"github.com/noah-isme/retail-console/internal/coupon"
	"github.com/noah-isme/retail-console/internal/discount"
	"github.com/noah-isme/retail-console/internal/events"
	"github.com/noah-isme/retail-console/internal/repo"
	"github.com/noah-isme/retail-console/internal/sale"
	"github.com/noah-isme/retail-console/internal/store"
)

// Dependencies enumerates the services shared across console flows to make
// wiring explicit.
type Dependencies struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Events    *events.Bus
	Items     *catalog.Store
	Discounts *discount.Ledger
	Pricing   *discount.Engine
	Coupons   *coupon.Ledger
	Sales     *sale.Handler
	Stores    *store.Registry
}

// Build wires repositories and services from configuration.
func Build(cfg *config.Config, logger zerolog.Logger) (*Dependencies, error) {
	bus := &events.Bus{
		Store:     repo.NewEvents(cfg.TablePath("events.csv"), logger),
		Notifiers: []events.Notifier{events.LogNotifier{Logger: logger}},
	}

	items, err := catalog.NewStore(repo.NewItems(cfg.TablePath("items.csv"), logger), logger)
	if err != nil {
		return nil, err
	}
	ledger, err := discount.NewLedger(repo.NewDiscounts(
		cfg.TablePath("discounts.csv"),
		cfg.TablePath("original_prices.csv"),
		logger,
	))
	if err != nil {
		return nil, err
	}
	coupons, err := coupon.NewLedger(repo.NewCoupons(cfg.TablePath("coupons.csv"), logger), time.Now)
	if err != nil {
		return nil, err
	}
	stores, err := store.NewRegistry(repo.NewStores(cfg.TablePath("stores.csv"), logger))
	if err != nil {
		return nil, err
	}

	engine := &discount.Engine{Items: items, Ledger: ledger, Events: bus, Log: logger}
	sales := &sale.Handler{
		Items:    items,
		Coupons:  coupons,
		Receipts: repo.NewReceipts(cfg.TablePath("receipts.csv"), logger),
		Payments: sale.Terminal{Log: logger},
		Events:   bus,
		Log:      logger,
	}

	return &Dependencies{
		Config:    cfg,
		Logger:    logger,
		Events:    bus,
		Items:     items,
		Discounts: ledger,
		Pricing:   engine,
		Coupons:   coupons,
		Sales:     sales,
		Stores:    stores,
	}, nil
}
