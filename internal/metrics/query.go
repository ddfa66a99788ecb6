package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outbound query and lookup metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyync_lookup",
			Name:      "queries_total",
			Help:      "Total number of remote search queries",
		},
		[]string{"scope", "status"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cyync_lookup",
			Name:      "query_duration_seconds",
			Help:      "Remote search query duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"scope"},
	)

	QueriesInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cyync_lookup",
			Name:      "queries_in_flight",
			Help:      "Remote search queries currently executing",
		},
	)

	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyync_lookup",
			Name:      "lookups_total",
			Help:      "Total number of lookup invocations",
		},
		[]string{"status"},
	)

	LookupEntities = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cyync_lookup",
			Name:      "lookup_entities",
			Help:      "Entities per lookup invocation",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		},
	)
)

var registerOnce sync.Once

// RegisterQueryMetrics registers outbound query and lookup metrics on the
// default registry. Safe to call more than once.
func RegisterQueryMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(QueriesTotal, QueryDuration, QueriesInFlight, LookupsTotal, LookupEntities)
	})
}

// ObserveQuery records one finished remote query.
func ObserveQuery(scope string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	QueriesTotal.WithLabelValues(scope, status).Inc()
	QueryDuration.WithLabelValues(scope).Observe(time.Since(start).Seconds())
}

// ObserveLookup records one finished lookup invocation.
func ObserveLookup(entities int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	LookupsTotal.WithLabelValues(status).Inc()
	LookupEntities.Observe(float64(entities))
}
