package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// CartMetrics records cart operations and slot health.
type CartMetrics struct {
	duration  *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	malformed prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer. A nil registerer
// yields a recorder that drops everything.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_operation_duration_seconds",
		Help:    "Duration of cart operations including slot round-trips.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart operations by outcome.",
	}, []string{"operation", "outcome"})
	malformed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_slot_malformed_total",
		Help: "Persisted carts discarded because they could not be decoded.",
	})
	reg.MustRegister(duration, ops, malformed)
	return &CartMetrics{
		duration:  duration,
		ops:       ops,
		malformed: malformed,
	}
}

// Observe records one finished operation.
func (c *CartMetrics) Observe(operation, outcome string, duration time.Duration) {
	if c == nil || c.ops == nil {
		return
	}
	op := normalizeLabel(operation)
	c.ops.WithLabelValues(op, normalizeLabel(outcome)).Inc()
	c.duration.WithLabelValues(op).Observe(duration.Seconds())
}

func (c *CartMetrics) IncMalformedSlot() {
	if c == nil || c.malformed == nil {
		return
	}
	c.malformed.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
