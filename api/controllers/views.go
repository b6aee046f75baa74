package controllers

import (
	"time"

	"github.com/angelmondragon/storefront-backend/internal/alerts"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/delivery"
	"github.com/angelmondragon/storefront-backend/internal/pricing"
	"github.com/angelmondragon/storefront-backend/internal/simulation"
)

type productSummary struct {
	catalog.Product
	PriceLabel      string           `json:"priceLabel"`
	OnSale          bool             `json:"onSale"`
	DiscountPercent int              `json:"discountPercent,omitempty"`
	Savings         int64            `json:"savings,omitempty"`
	AverageRating   float64          `json:"averageRating"`
	Stock           simulation.Stock `json:"stock"`
}

func newProductSummary(p catalog.Product) productSummary {
	out := productSummary{
		Product:       p,
		PriceLabel:    pricing.FormatAmount(p.Price),
		OnSale:        p.OnSale(),
		Savings:       pricing.Savings(p.Price, p.Sale),
		AverageRating: simulation.AverageRating(p.ID),
		Stock:         simulation.StockFor(p.ID),
	}
	if pct, ok := pricing.DiscountPercent(p.Price, p.Sale); ok {
		out.DiscountPercent = pct
	}
	return out
}

type productList struct {
	Items      []productSummary `json:"items"`
	Total      int              `json:"total"`
	NextCursor string           `json:"nextCursor,omitempty"`
	Categories []string         `json:"categories"`
}

type productDetail struct {
	productSummary
	Facets     simulation.Facets   `json:"facets"`
	EMIOptions []pricing.Plan      `json:"emiOptions"`
	BankOffers []pricing.BankOffer `json:"bankOffers"`
	InCart     bool                `json:"inCart"`
	InWishlist bool                `json:"inWishlist"`
	Alerts     []alerts.Alert      `json:"alerts"`
}

type cartLineView struct {
	cart.Line
	LineTotal       int64  `json:"lineTotal"`
	LineTotalLabel  string `json:"lineTotalLabel"`
	DiscountPercent int    `json:"discountPercent,omitempty"`
	Savings         int64  `json:"savings,omitempty"`
}

type cartView struct {
	Items           []cartLineView `json:"items"`
	Totals          pricing.Totals `json:"totals"`
	SubtotalLabel   string         `json:"subtotalLabel"`
	TaxLabel        string         `json:"taxLabel"`
	GrandTotalLabel string         `json:"grandTotalLabel"`
	TotalSavings    int64          `json:"totalSavings"`
}

// newCartView prices the cart. Discounts compare the stored unit price with
// the sale anchor currently in the catalog.
func newCartView(state cart.State, cat *catalog.Catalog, opts PricingOptions) cartView {
	lines := make([]cartLineView, 0, len(state.Lines))
	items := make([]pricing.Item, 0, len(state.Lines))
	var savings int64
	for _, line := range state.Lines {
		item := line.Item()
		items = append(items, item)
		lineTotal := pricing.CartSubtotal([]pricing.Item{item})
		view := cartLineView{
			Line:           line,
			LineTotal:      lineTotal,
			LineTotalLabel: pricing.FormatAmount(lineTotal),
		}
		if cat != nil {
			if p, ok := cat.Find(line.ProductID); ok {
				if pct, ok := pricing.DiscountPercent(line.Price, p.Sale); ok {
					view.DiscountPercent = pct
					view.Savings = pricing.Savings(line.Price, p.Sale) * int64(line.Quantity)
					savings += view.Savings
				}
			}
		}
		lines = append(lines, view)
	}
	totals := pricing.Quote(items, opts.TaxRate)
	return cartView{
		Items:           lines,
		Totals:          totals,
		SubtotalLabel:   pricing.FormatAmount(totals.Subtotal),
		TaxLabel:        pricing.FormatDecimal(totals.Tax),
		GrandTotalLabel: pricing.FormatDecimal(totals.GrandTotal),
		TotalSavings:    savings,
	}
}

type alertsView struct {
	Alerts    []alerts.Alert `json:"alerts"`
	Triggered []alerts.Alert `json:"triggered"`
}

type deliveryView struct {
	delivery.Estimate
	ArrivesBy string `json:"arrivesBy"`
}

func newDeliveryView(est delivery.Estimate, now time.Time) deliveryView {
	return deliveryView{
		Estimate:  est,
		ArrivesBy: est.ArrivesBy(now).Format(time.DateOnly),
	}
}
