// Package simulation derives stable stock, rating and review facets from a
// product id. Every value is a pure function of Hash(id); nothing here reads
// a clock or a random source.
package simulation

import (
	"math"
	"unicode/utf16"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Hash sums the UTF-16 code units of id.
func Hash(id string) int {
	sum := 0
	for _, unit := range utf16.Encode([]rune(id)) {
		sum += int(unit)
	}
	return sum
}

// Stock is the simulated inventory of a product.
type Stock struct {
	Level  int               `json:"level"`
	Bucket enums.StockBucket `json:"bucket"`
	// Display is the unit count shown to the visitor. It is zero for buckets
	// that show a generic in-stock label.
	Display int `json:"display,omitempty"`
}

// StockFor buckets hash % 100. Critical levels display level+1 so the count
// shown is never 0.
func StockFor(id string) Stock {
	level := Hash(id) % 100
	switch {
	case level > 70:
		return Stock{Level: level, Bucket: enums.StockBucketHigh}
	case level > 30:
		return Stock{Level: level, Bucket: enums.StockBucketMedium}
	case level > 10:
		return Stock{Level: level, Bucket: enums.StockBucketLow, Display: level}
	default:
		return Stock{Level: level, Bucket: enums.StockBucketCritical, Display: level + 1}
	}
}

// AverageRating is 4.0 + (hash % 10) / 10, in [4.0, 4.9].
func AverageRating(id string) float64 {
	return float64(40+Hash(id)%10) / 10
}

// TotalReviews is 100 + hash % 900, in [100, 999].
func TotalReviews(id string) int {
	return 100 + Hash(id)%900
}

// Distribution counts reviews per star. Star1 takes the remainder.
type Distribution struct {
	Star5 int `json:"star5"`
	Star4 int `json:"star4"`
	Star3 int `json:"star3"`
	Star2 int `json:"star2"`
	Star1 int `json:"star1"`
}

// Total sums every bucket.
func (d Distribution) Total() int {
	return d.Star5 + d.Star4 + d.Star3 + d.Star2 + d.Star1
}

// Consistent reports whether the remainder bucket is non-negative. The share
// constants can exceed 100% for some hashes, which drives Star1 below zero.
func (d Distribution) Consistent() bool {
	return d.Star1 >= 0
}

// DistributionFor splits TotalReviews(id) across the five star buckets.
func DistributionFor(id string) Distribution {
	h := Hash(id)
	total := TotalReviews(id)
	t := float64(total)
	d := Distribution{
		Star5: int(math.Floor(t * (0.5 + float64(h%20)/100))),
		Star4: int(math.Floor(t * (0.25 + float64(h%10)/100))),
		Star3: int(math.Floor(t * 0.10)),
		Star2: int(math.Floor(t * 0.05)),
	}
	d.Star1 = total - d.Star5 - d.Star4 - d.Star3 - d.Star2
	return d
}

// Facets bundles every simulated value for one product.
type Facets struct {
	Stock         Stock        `json:"stock"`
	AverageRating float64      `json:"averageRating"`
	TotalReviews  int          `json:"totalReviews"`
	Distribution  Distribution `json:"distribution"`
}

// FacetsFor computes all facets of id.
func FacetsFor(id string) Facets {
	return Facets{
		Stock:         StockFor(id),
		AverageRating: AverageRating(id),
		TotalReviews:  TotalReviews(id),
		Distribution:  DistributionFor(id),
	}
}
