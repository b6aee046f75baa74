package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the unit every amount in the catalog is expressed in.
var Currency = currency.INR

var printer = message.NewPrinter(language.English)

// FormatAmount renders a whole amount with digit grouping, e.g. "INR 29,990".
func FormatAmount(amount int64) string {
	return printer.Sprintf("%v %d", Currency, amount)
}

// FormatDecimal renders a fractional amount with two decimals, e.g. "INR 5,398.20".
func FormatDecimal(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprintf("%v %.2f", Currency, f)
}
