package enums

import "fmt"

// SortKey selects the ordering of a catalog query. The zero value keeps catalog order.
type SortKey string

const (
	SortNatural   SortKey = ""
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortPriceLow  SortKey = "price_low"
	SortPriceHigh SortKey = "price_high"
)

var validSortKeys = []SortKey{
	SortNatural,
	SortNewest,
	SortPopular,
	SortPriceLow,
	SortPriceHigh,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
