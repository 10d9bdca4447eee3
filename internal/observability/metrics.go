package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the dashboard backend.
type Metrics struct {
	DatasetReloads *prometheus.CounterVec // labels: outcome={success,error}
	CacheLookups   *prometheus.CounterVec // labels: result={hit,miss}
	RowsRejected   *prometheus.CounterVec // labels: reason={bad_date,missing_coord}
	EventsLoaded   prometheus.Gauge
	LoadDuration   prometheus.Histogram

	LocateRequests     *prometheus.CounterVec // labels: outcome={matched,no_match}
	UnmatchedDistricts prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetReloads,
		m.CacheLookups,
		m.RowsRejected,
		m.EventsLoaded,
		m.LoadDuration,
		m.LocateRequests,
		m.UnmatchedDistricts,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stubble_watch",
			Name:      "dataset_reloads_total",
			Help:      "Dataset loads by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stubble_watch",
			Name:      "dataset_cache_lookups_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stubble_watch",
			Name:      "event_rows_rejected_total",
			Help:      "Event rows dropped during load by reason.",
		}, []string{"reason"}),
		EventsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stubble_watch",
			Name:      "events_loaded",
			Help:      "Events in the currently cached dataset.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stubble_watch",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a full boundary + event load.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		LocateRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stubble_watch",
			Name:      "locate_requests_total",
			Help:      "Map-click district lookups by outcome.",
		}, []string{"outcome"}),
		UnmatchedDistricts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stubble_watch",
			Name:      "unmatched_districts",
			Help:      "Event district names with no matching boundary in the cached dataset.",
		}),
	}
}
