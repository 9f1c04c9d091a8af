package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the hub's event-pipeline Prometheus metrics.
type Metrics struct {
	EventsProcessed   *prometheus.CounterVec
	EventsDropped     prometheus.Counter
	EventsFailed      prometheus.Counter
	PartialFetches    prometheus.Counter
	BroadcastFailures prometheus.Counter
	RebuildDuration   prometheus.Histogram
}

// New creates and registers all pipeline metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		EventsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hub_events_processed_total",
			Help: "Employee events fully processed, by event type",
		}, []string{"event_type"}),
		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hub_events_dropped_total",
			Help: "Envelopes dropped as unprocessable (malformed or missing country)",
		}),
		EventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hub_events_failed_total",
			Help: "Handler runs that returned an error to the retry mechanism",
		}),
		PartialFetches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hub_partial_fetches_total",
			Help: "Rebuild fetches that did not retrieve the full employee set",
		}),
		BroadcastFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hub_broadcast_failures_total",
			Help: "Real-time fan-out attempts that failed after the cache write",
		}),
		RebuildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hub_rebuild_duration_seconds",
			Help:    "End-to-end duration of one invalidate-refetch-aggregate-cache cycle",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveRebuild records one completed rebuild.
func (m *Metrics) ObserveRebuild(d time.Duration) {
	m.RebuildDuration.Observe(d.Seconds())
}
