// Package metrics exposes the pipeline's Prometheus metrics on a dedicated
// HTTP listener, separate from the API server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the registry, the HTTP server serving it, and the
// pipeline's instrument set.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	// AnalysesTotal counts finished analyses by terminal status.
	AnalysesTotal *prometheus.CounterVec

	// AnalysesInProgress tracks analyses currently being processed.
	AnalysesInProgress prometheus.Gauge

	// StageDuration measures per-object stage latency. Stages: crop, upload,
	// attributes, embed, search, rerank, persist.
	StageDuration *prometheus.HistogramVec

	// ObjectOutcomes counts per-object worker outcomes by result and reason.
	ObjectOutcomes *prometheus.CounterVec

	// ProductMatchesTotal counts persisted product matches by item category.
	ProductMatchesTotal *prometheus.CounterVec
}

// NewMetrics builds the registry and instruments and prepares the HTTP
// server. The server is started by the fx lifecycle hook, not here.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m := &Metrics{
		Registry: registry,
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylelens_analyses_total",
			Help: "Finished analyses by terminal status.",
		}, []string{"status"}),
		AnalysesInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stylelens_analyses_in_progress",
			Help: "Analyses currently being processed.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stylelens_stage_duration_seconds",
			Help:    "Per-object pipeline stage latency.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"stage"}),
		ObjectOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylelens_object_outcomes_total",
			Help: "Per-object worker outcomes.",
		}, []string{"result", "reason"}),
		ProductMatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylelens_product_matches_total",
			Help: "Persisted product matches by item category.",
		}, []string{"category"}),
	}

	wrapped.MustRegister(
		m.AnalysesTotal,
		m.AnalysesInProgress,
		m.StageDuration,
		m.ObjectOutcomes,
		m.ProductMatchesTotal,
	)

	m.Server = &http.Server{
		Addr:              cfg.Address,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return m
}

// ObserveStage records one stage duration.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
