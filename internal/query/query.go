// Package query filters and sorts the catalog for listing pages.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/simulation"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// FastDeliveryThreshold is the price below which a product counts as fast delivery.
const FastDeliveryThreshold int64 = 10000

// Filters are combined with AND. Zero values disable a predicate.
type Filters struct {
	Category     string
	Text         string
	MinPrice     *int64
	MaxPrice     *int64
	SaleOnly     bool
	FastDelivery bool
	MinRating    float64
}

// Spec is a full listing request.
type Spec struct {
	Filters Filters
	Sort    enums.SortKey
}

// ParseSortKey validates a user supplied sort key.
func ParseSortKey(raw string) (enums.SortKey, error) {
	key, err := enums.ParseSortKey(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key").
			WithDetails(map[string]string{"sort": raw})
	}
	return key, nil
}

// Matches reports whether p passes every enabled filter.
func (f Filters) Matches(p catalog.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if text := strings.ToLower(strings.TrimSpace(f.Text)); text != "" {
		if !strings.Contains(strings.ToLower(p.Name), text) && !strings.Contains(strings.ToLower(p.Category), text) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.SaleOnly && !p.OnSale() {
		return false
	}
	if f.FastDelivery && p.Price >= FastDeliveryThreshold {
		return false
	}
	if f.MinRating > 0 && simulation.AverageRating(p.ID) < f.MinRating {
		return false
	}
	return true
}

// Run filters products and then orders the survivors. The input slice is not
// modified; the result is always a new slice.
func Run(products []catalog.Product, spec Spec) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if spec.Filters.Matches(p) {
			out = append(out, p)
		}
	}

	switch spec.Sort {
	case enums.SortNewest:
		slices.Reverse(out)
	case enums.SortPopular:
		slices.SortStableFunc(out, func(a, b catalog.Product) int {
			return boolRank(b.OnSale()) - boolRank(a.OnSale())
		})
	case enums.SortPriceLow:
		slices.SortStableFunc(out, func(a, b catalog.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case enums.SortPriceHigh:
		slices.SortStableFunc(out, func(a, b catalog.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}
	return out
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}
