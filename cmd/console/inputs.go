package main

import "github.com/shopspring/decimal"

// itemInput carries operator input for catalog upserts.
type itemInput struct {
	Name       string `validate:"required"`
	Department string `validate:"required"`
	Price      decimal.Decimal
	Quantity   int `validate:"gte=0"`
}

// couponInput carries operator input for coupon registration.
type couponInput struct {
	Code string `validate:"required"`
	Days int    `validate:"gt=0"`
}
