// Package pricing holds the pure commerce computations: cart totals and tax,
// discount percentages, EMI schedules and bank-offer eligibility.
package pricing

import "github.com/shopspring/decimal"

// DefaultTaxRate is the flat tax applied to cart subtotals.
var DefaultTaxRate = decimal.RequireFromString("0.18")

// Item is one priced cart line.
type Item struct {
	UnitPrice int64
	Quantity  int
}

// Totals aggregates the numbers shown on a cart summary.
type Totals struct {
	Subtotal   int64           `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	TaxRate    decimal.Decimal `json:"taxRate"`
	Lines      int             `json:"lines"`
	Units      int             `json:"units"`
}

// CartSubtotal sums unit price times quantity. An empty cart totals 0.
func CartSubtotal(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// CartTax is subtotal × rate, unrounded.
func CartTax(subtotal int64, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(subtotal).Mul(rate)
}

// CartGrandTotal is subtotal × (1 + rate).
func CartGrandTotal(subtotal int64, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(subtotal).Mul(decimal.NewFromInt(1).Add(rate))
}

// Quote computes every cart total in one pass.
func Quote(items []Item, rate decimal.Decimal) Totals {
	subtotal := CartSubtotal(items)
	units := 0
	for _, it := range items {
		units += it.Quantity
	}
	return Totals{
		Subtotal:   subtotal,
		Tax:        CartTax(subtotal, rate),
		GrandTotal: CartGrandTotal(subtotal, rate),
		TaxRate:    rate,
		Lines:      len(items),
		Units:      units,
	}
}
