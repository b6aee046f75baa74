package enums

import "testing"

func TestParseTheme(t *testing.T) {
	got, err := ParseTheme("light")
	if err != nil || got != ThemeLight {
		t.Fatalf("expected light, got %q (%v)", got, err)
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Fatal("expected unknown theme to fail")
	}
	if ThemeDark.Opposite() != ThemeLight || ThemeLight.Opposite() != ThemeDark {
		t.Fatal("opposite should flip between dark and light")
	}
}

func TestParseSortKey(t *testing.T) {
	for _, raw := range []string{"", "newest", "popular", "price_low", "price_high"} {
		key, err := ParseSortKey(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !key.IsValid() {
			t.Fatalf("expected %q to be valid", raw)
		}
	}
	if _, err := ParseSortKey("rating"); err == nil {
		t.Fatal("expected unknown sort key to fail")
	}
}

func TestStockBucketShowsCount(t *testing.T) {
	if StockBucketHigh.ShowsCount() || StockBucketMedium.ShowsCount() {
		t.Fatal("in-stock buckets do not show a count")
	}
	if !StockBucketLow.ShowsCount() || !StockBucketCritical.ShowsCount() {
		t.Fatal("urgent buckets show a count")
	}
}
