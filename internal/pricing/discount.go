package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DiscountPercent returns round((sale-price)/sale × 100), halves rounded up.
// ok is false when there is no sale anchor above price.
func DiscountPercent(price int64, sale *int64) (percent int, ok bool) {
	if sale == nil || *sale <= price || *sale <= 0 {
		return 0, false
	}
	pct := decimal.NewFromInt(*sale - price).
		Mul(hundred).
		Div(decimal.NewFromInt(*sale)).
		Round(0)
	return int(pct.IntPart()), true
}

// Savings is the amount saved per unit against the sale anchor.
func Savings(price int64, sale *int64) int64 {
	if sale == nil || *sale <= price {
		return 0
	}
	return *sale - price
}
