package controllers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/pricing"
)

// PricingOptions carries the configurable inputs of the derived views. A zero
// TaxRate means untaxed.
type PricingOptions struct {
	TaxRate    decimal.Decimal
	EMITenures []int
	BankOffers []pricing.BankOffer
	Now        func() time.Time
}

func (o PricingOptions) withDefaults() PricingOptions {
	if len(o.EMITenures) == 0 {
		o.EMITenures = pricing.DefaultEMITenures
	}
	if o.BankOffers == nil {
		o.BankOffers = pricing.DefaultBankOffers
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
