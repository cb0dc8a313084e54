// Package metrics exposes prometheus collectors for the import and province
// resolution flows, plus the /metrics handler for serve mode.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ImportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thaimap_imports_total",
		Help: "Total import batches processed",
	})
	PointsImportedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thaimap_points_imported_total",
		Help: "Total points added by imports",
	})
	ImportLinesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thaimap_import_lines_skipped_total",
		Help: "Total unparseable lines dropped by the text importer",
	})
	ResolveRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "thaimap_resolve_requests_total",
		Help: "Total province resolution batches by answering source",
	}, []string{"source"})
	ResolveFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thaimap_resolve_fallback_total",
		Help: "Total resolution batches that exhausted every provider",
	})
	ResolveDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "thaimap_resolve_duration_seconds",
		Help:    "Province resolution batch duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "thaimap_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(ImportsTotal)
	prometheus.MustRegister(PointsImportedTotal)
	prometheus.MustRegister(ImportLinesSkippedTotal)
	prometheus.MustRegister(ResolveRequestsTotal)
	prometheus.MustRegister(ResolveFallbackTotal)
	prometheus.MustRegister(ResolveDurationSeconds)
	prometheus.MustRegister(HTTPRequestsTotal)
}

// Handler returns the prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }
