package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStoreMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStoreMetrics(reg)
	metrics.IncMutation("cart", "add")
	metrics.IncMutation("cart", "add")
	metrics.IncLoadFallback("wishlist", "decode")
	metrics.IncPersistFailure("")
	metrics.IncLookup("fallback")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "store_mutations_total", "store", "cart"); err != nil {
		t.Fatalf("fetch mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected mutations=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "store_load_fallbacks_total", "reason", "decode"); err != nil {
		t.Fatalf("fetch fallbacks: %v", err)
	} else if got != 1 {
		t.Fatalf("expected fallbacks=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "store_persist_failures_total", "store", "unknown"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "delivery_lookups_total", "outcome", "fallback"); err != nil {
		t.Fatalf("fetch lookups: %v", err)
	} else if got != 1 {
		t.Fatalf("expected lookups=1, got %f", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *StoreMetrics
	m.IncMutation("cart", "add")
	m.IncLoadFallback("cart", "decode")
	m.IncPersistFailure("cart")
	m.IncLookup("hit")

	unregistered := NewStoreMetrics(nil)
	unregistered.IncMutation("cart", "add")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
