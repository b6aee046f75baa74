package query

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/simulation"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func amount(v int64) *int64 { return &v }

func fiveProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "a", Name: "Galaxy Phone", Price: 29990, Category: "mobiles", Sale: amount(34990)},
		{ID: "b", Name: "Budget Phone", Price: 8999, Category: "mobiles"},
		{ID: "c", Name: "Earbuds", Price: 2499, Category: "audio", Sale: amount(4999)},
		{ID: "d", Name: "Soundbar", Price: 11999, Category: "audio", Sale: amount(11000)},
		{ID: "e", Name: "Smart Band", Price: 1799, Category: "wearables", Sale: amount(2499)},
	}
}

func ids(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSaleOnlyKeepsCatalogOrder(t *testing.T) {
	got := Run(fiveProducts(), Spec{Filters: Filters{SaleOnly: true}})
	// d has a sale anchor below its price and is not on sale.
	if diff := cmp.Diff([]string{"a", "c", "e"}, ids(got)); diff != "" {
		t.Fatalf("sale-only mismatch (-want +got):\n%s", diff)
	}
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{name: "none", filters: Filters{}, want: []string{"a", "b", "c", "d", "e"}},
		{name: "category", filters: Filters{Category: "audio"}, want: []string{"c", "d"}},
		{name: "text matches name case-insensitively", filters: Filters{Text: "PHONE"}, want: []string{"a", "b"}},
		{name: "text matches category", filters: Filters{Text: "wear"}, want: []string{"e"}},
		{name: "max price inclusive", filters: Filters{MaxPrice: amount(8999)}, want: []string{"b", "c", "e"}},
		{name: "min price inclusive", filters: Filters{MinPrice: amount(11999)}, want: []string{"a", "d"}},
		{name: "fast delivery", filters: Filters{FastDelivery: true}, want: []string{"b", "c", "e"}},
		{name: "combined", filters: Filters{Category: "mobiles", FastDelivery: true}, want: []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(Run(fiveProducts(), Spec{Filters: tt.filters}))); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMinRatingUsesSimulation(t *testing.T) {
	products := fiveProducts()
	floor := 4.5
	got := Run(products, Spec{Filters: Filters{MinRating: floor}})
	for _, p := range got {
		if simulation.AverageRating(p.ID) < floor {
			t.Fatalf("%s rated %.1f slipped through", p.ID, simulation.AverageRating(p.ID))
		}
	}
	for _, p := range products {
		if simulation.AverageRating(p.ID) >= floor && !containsID(got, p.ID) {
			t.Fatalf("%s should pass the rating floor", p.ID)
		}
	}
}

func containsID(products []catalog.Product, id string) bool {
	for _, p := range products {
		if p.ID == id {
			return true
		}
	}
	return false
}

func TestSorts(t *testing.T) {
	tests := []struct {
		key  enums.SortKey
		want []string
	}{
		{key: enums.SortNatural, want: []string{"a", "b", "c", "d", "e"}},
		{key: enums.SortNewest, want: []string{"e", "d", "c", "b", "a"}},
		{key: enums.SortPopular, want: []string{"a", "c", "e", "b", "d"}},
		{key: enums.SortPriceLow, want: []string{"e", "c", "b", "d", "a"}},
		{key: enums.SortPriceHigh, want: []string{"a", "d", "b", "c", "e"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(Run(fiveProducts(), Spec{Sort: tt.key}))); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPriceSortsAreStableOnTies(t *testing.T) {
	products := []catalog.Product{
		{ID: "x", Price: 500},
		{ID: "y", Price: 100},
		{ID: "z", Price: 500},
	}
	if diff := cmp.Diff([]string{"y", "x", "z"}, ids(Run(products, Spec{Sort: enums.SortPriceLow}))); diff != "" {
		t.Fatalf("price_low tie order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "z", "y"}, ids(Run(products, Spec{Sort: enums.SortPriceHigh}))); diff != "" {
		t.Fatalf("price_high tie order (-want +got):\n%s", diff)
	}
}

func TestPriceSortMonotonic(t *testing.T) {
	faker := gofakeit.New(99)
	products := make([]catalog.Product, 60)
	for i := range products {
		products[i] = catalog.Product{ID: faker.UUID(), Price: int64(faker.IntRange(100, 100000))}
	}
	low := Run(products, Spec{Sort: enums.SortPriceLow})
	high := Run(products, Spec{Sort: enums.SortPriceHigh})
	for i := 1; i < len(low); i++ {
		if low[i].Price < low[i-1].Price {
			t.Fatalf("price_low not non-decreasing at %d", i)
		}
		if high[i].Price > high[i-1].Price {
			t.Fatalf("price_high not non-increasing at %d", i)
		}
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	products := fiveProducts()
	before := ids(products)
	_ = Run(products, Spec{Sort: enums.SortNewest})
	_ = Run(products, Spec{Sort: enums.SortPriceHigh})
	if diff := cmp.Diff(before, ids(products)); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}

	out := Run(products, Spec{})
	out[0].Name = "changed"
	if products[0].Name == "changed" {
		t.Fatal("result aliases the input slice")
	}
}

func TestFilterOrderIndependence(t *testing.T) {
	products := fiveProducts()
	combined := Run(products, Spec{Filters: Filters{SaleOnly: true, FastDelivery: true}})
	stepwise := Run(Run(products, Spec{Filters: Filters{FastDelivery: true}}), Spec{Filters: Filters{SaleOnly: true}})
	reversed := Run(Run(products, Spec{Filters: Filters{SaleOnly: true}}), Spec{Filters: Filters{FastDelivery: true}})
	if diff := cmp.Diff(ids(combined), ids(stepwise)); diff != "" {
		t.Fatalf("stepwise mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(ids(combined), ids(reversed)); diff != "" {
		t.Fatalf("reversed mismatch:\n%s", diff)
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey(" Price_Low ")
	if err != nil || key != enums.SortPriceLow {
		t.Fatalf("unexpected parse result %q %v", key, err)
	}
	if key, err := ParseSortKey(""); err != nil || key != enums.SortNatural {
		t.Fatalf("empty key should be natural order, got %q %v", key, err)
	}
	if _, err := ParseSortKey("cheapest"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
