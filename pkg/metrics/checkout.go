package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics counts checkout outcomes and persistence failures.
type CheckoutMetrics struct {
	completed       prometheus.Counter
	rejected        *prometheus.CounterVec
	persistFailures prometheus.Counter
	duration        prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	completed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_completed_total",
		Help: "Successful checkouts.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Rejected checkouts by reason.",
	}, []string{"reason"})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transaction_persist_failures_total",
		Help: "Durable writes of the transaction log that failed.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout execution in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(completed, rejected, persistFailures, duration)
	return &CheckoutMetrics{
		completed:       completed,
		rejected:        rejected,
		persistFailures: persistFailures,
		duration:        duration,
	}
}

// IncCompleted counts one successful checkout.
func (c *CheckoutMetrics) IncCompleted() {
	if c == nil || c.completed == nil {
		return
	}
	c.completed.Inc()
}

// IncRejected counts one rejected checkout with its reason.
func (c *CheckoutMetrics) IncRejected(reason string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncPersistFailure counts one failed durable write.
func (c *CheckoutMetrics) IncPersistFailure() {
	if c == nil || c.persistFailures == nil {
		return
	}
	c.persistFailures.Inc()
}

// ObserveDuration records how long a checkout took.
func (c *CheckoutMetrics) ObserveDuration(elapsed time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.Observe(elapsed.Seconds())
}
