// Package metrics records pipeline metrics with Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/docmatch/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.Metrics = (*Metrics)(nil)

// Metrics holds the Prometheus collectors for ingestion and matching.
// Each instance owns its registry, so several may coexist in tests.
//
// Metrics:
//   - docmatch_ingest_total{outcome} - files ingested by outcome (new, skip, reingest)
//   - docmatch_ingest_failures_total - files that failed to ingest
//   - docmatch_search_duration_seconds - search latency
//   - docmatch_search_hits - hits returned per search
//   - docmatch_selections_total - confirmed selections
//   - docmatch_reports_total - generated reports
type Metrics struct {
	registry *prometheus.Registry

	IngestTotal     *prometheus.CounterVec
	IngestFailures  prometheus.Counter
	SearchDuration  prometheus.Histogram
	SearchHits      prometheus.Histogram
	SelectionsTotal prometheus.Counter
	ReportsTotal    prometheus.Counter
}

// New creates and registers the collectors, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		IngestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docmatch_ingest_total",
				Help: "Total number of files processed by ingestion, by outcome",
			},
			[]string{"outcome"},
		),

		IngestFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "docmatch_ingest_failures_total",
				Help: "Total number of files that failed to ingest",
			},
		),

		SearchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docmatch_search_duration_seconds",
				Help:    "Duration of candidate searches in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~1s
			},
		),

		SearchHits: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docmatch_search_hits",
				Help:    "Number of hits returned per search",
				Buckets: []float64{0, 1, 2, 5, 10},
			},
		),

		SelectionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "docmatch_selections_total",
				Help: "Total number of confirmed match selections",
			},
		),

		ReportsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "docmatch_reports_total",
				Help: "Total number of generated reports",
			},
		),
	}
}

// IngestCompleted counts a file by ingest outcome.
func (m *Metrics) IngestCompleted(outcome string) {
	m.IngestTotal.WithLabelValues(outcome).Inc()
}

// IngestFailed counts a failed file.
func (m *Metrics) IngestFailed() {
	m.IngestFailures.Inc()
}

// SearchObserved records a search's latency and hit count.
func (m *Metrics) SearchObserved(d time.Duration, hits int) {
	m.SearchDuration.Observe(d.Seconds())
	m.SearchHits.Observe(float64(hits))
}

// SelectionRecorded counts a confirmed selection.
func (m *Metrics) SelectionRecorded() {
	m.SelectionsTotal.Inc()
}

// ReportGenerated counts a generated report.
func (m *Metrics) ReportGenerated() {
	m.ReportsTotal.Inc()
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
