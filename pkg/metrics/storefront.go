package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
)

// StorefrontMetrics records cart mutations, checkouts and live sessions.
type StorefrontMetrics struct {
	mutations  *prometheus.CounterVec
	checkouts  *prometheus.CounterVec
	orderValue prometheus.Histogram
	sessions   prometheus.Gauge
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation and outcome.",
	}, []string{"operation", "outcome"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"outcome"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_order_total_amount",
		Help:    "Grand total of placed orders, shipping included.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
	})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_sessions_active",
		Help: "Sessions currently holding a cart in memory.",
	})
	reg.MustRegister(mutations, checkouts, orderValue, sessions)
	return &StorefrontMetrics{
		mutations:  mutations,
		checkouts:  checkouts,
		orderValue: orderValue,
		sessions:   sessions,
	}
}

// IncMutation counts one cart operation.
func (m *StorefrontMetrics) IncMutation(operation, outcome string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// ObserveCheckout counts a checkout attempt and, on success, its order value.
func (m *StorefrontMetrics) ObserveCheckout(outcome string, total float64) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
	if outcome == OutcomeSuccess && m.orderValue != nil {
		m.orderValue.Observe(total)
	}
}

// SetActiveSessions reports the number of carts held in memory.
func (m *StorefrontMetrics) SetActiveSessions(n int) {
	if m == nil || m.sessions == nil {
		return
	}
	m.sessions.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
