package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records activity of the persisted visitor containers.
type StoreMetrics struct {
	mutations       *prometheus.CounterVec
	loadFallbacks   *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	lookups         *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "Persisted store mutations by store and operation.",
	}, []string{"store", "op"})
	loadFallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_load_fallbacks_total",
		Help: "Store loads that fell back to the default state.",
	}, []string{"store", "reason"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_persist_failures_total",
		Help: "Store writes rejected by the durable backend.",
	}, []string{"store"})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_lookups_total",
		Help: "Pincode serviceability lookups by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(mutations, loadFallbacks, persistFailures, lookups)
	return &StoreMetrics{
		mutations:       mutations,
		loadFallbacks:   loadFallbacks,
		persistFailures: persistFailures,
		lookups:         lookups,
	}
}

// IncMutation counts a committed mutation.
func (m *StoreMetrics) IncMutation(store, op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Inc()
}

// IncLoadFallback counts a load that degraded to the default state.
func (m *StoreMetrics) IncLoadFallback(store, reason string) {
	if m == nil || m.loadFallbacks == nil {
		return
	}
	m.loadFallbacks.WithLabelValues(normalizeLabel(store), normalizeLabel(reason)).Inc()
}

// IncPersistFailure counts a write the backend rejected.
func (m *StoreMetrics) IncPersistFailure(store string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(store)).Inc()
}

// IncLookup counts a pincode lookup outcome (hit, fallback, superseded, invalid).
func (m *StoreMetrics) IncLookup(outcome string) {
	if m == nil || m.lookups == nil {
		return
	}
	m.lookups.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
