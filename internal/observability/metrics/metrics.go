// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AnalysesTotal counts completed recommendation runs by source
	// ("upload" or "demo") and outcome ("ok" or "error").
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powerswitch_analyses_total",
			Help: "Recommendation runs, by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	// AnalysisDuration observes end-to-end analysis time including
	// parsing, in seconds.
	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "powerswitch_analysis_duration_seconds",
			Help:    "End-to-end recommendation run duration.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// UploadBytes observes the size of uploaded meter exports.
	UploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "powerswitch_upload_bytes",
			Help:    "Uploaded meter export sizes.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	// PlansSkippedTotal counts catalog entries excluded from ranking
	// because their schedule could not be parsed.
	PlansSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "powerswitch_plans_skipped_total",
			Help: "Plans excluded from ranking due to malformed schedules.",
		},
	)
)

func init() {
	prometheus.MustRegister(AnalysesTotal, AnalysisDuration, UploadBytes, PlansSkippedTotal)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
