// Package metrics exposes Prometheus instrumentation for the research
// pipeline: searches, page fetches, synthesis tier usage, and job outcomes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_searches_total",
			Help: "Total search provider queries, by outcome (ok, error, empty)",
		},
		[]string{"outcome"},
	)

	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_fetches_total",
			Help: "Total page fetches, by HTTP status (or error/challenge)",
		},
		[]string{"status"},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scout_fetch_duration_seconds",
			Help:    "Duration of page fetches in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15},
		},
	)

	SynthesisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_synthesis_total",
			Help: "Research records produced, by tier (llm, keyword, mock)",
		},
		[]string{"tier"},
	)

	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_jobs_total",
			Help: "Research jobs finished, by terminal status",
		},
		[]string{"status"},
	)
)

// RecordFetch updates fetch counters for one attempted page fetch.
func RecordFetch(statusCode int, challenged bool, failed bool, d time.Duration) {
	status := strconv.Itoa(statusCode)
	if failed {
		status = "error"
	} else if challenged {
		status = "challenge"
	}
	FetchesTotal.WithLabelValues(status).Inc()
	FetchDuration.Observe(d.Seconds())
}
