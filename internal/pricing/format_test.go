package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(29990); got != "INR 29,990" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatDecimal(decimal.RequireFromString("5398.2")); got != "INR 5,398.20" {
		t.Fatalf("unexpected format %q", got)
	}
}
