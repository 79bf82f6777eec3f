package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run statuses recorded on newsdesk_pipeline_runs_total.
const (
	StatusOK     = "ok"
	StatusNoData = "no_data"
	StatusError  = "error"
)

// Metrics holds the pipeline collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	runs           *prometheus.CounterVec
	runDuration    prometheus.Histogram
	recordsLoaded  *prometheus.CounterVec
	sourceFailures *prometheus.CounterVec
	recordsKept    prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsdesk",
		Name:      "pipeline_runs_total",
		Help:      "Pipeline runs by outcome",
	}, []string{"status"})
	m.runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "newsdesk",
		Name:      "pipeline_duration_seconds",
		Help:      "Time spent loading, classifying and sorting one dataset",
		Buckets:   prometheus.DefBuckets,
	})
	m.recordsLoaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsdesk",
		Name:      "records_loaded_total",
		Help:      "Raw records read per source tag",
	}, []string{"source"})
	m.sourceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsdesk",
		Name:      "source_failures_total",
		Help:      "Locations that existed but could not be parsed",
	}, []string{"source"})
	m.recordsKept = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "newsdesk",
		Name:      "records_kept",
		Help:      "Records in the most recent dataset after deduplication",
	})

	m.registry.MustRegister(
		m.runs, m.runDuration, m.recordsLoaded, m.sourceFailures, m.recordsKept,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSource records one location's outcome.
func (m *Metrics) ObserveSource(tag string, loaded int, failed bool) {
	if m == nil {
		return
	}
	if failed {
		m.sourceFailures.WithLabelValues(tag).Inc()
		return
	}
	m.recordsLoaded.WithLabelValues(tag).Add(float64(loaded))
}

// ObserveRun records a finished pipeline run.
func (m *Metrics) ObserveRun(status string, d time.Duration, kept int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.Observe(d.Seconds())
	m.recordsKept.Set(float64(kept))
}
