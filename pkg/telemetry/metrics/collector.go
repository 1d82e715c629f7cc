package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fincheck/docmatrix/pkg/config"
)

// Collector registers and records all docmatrix Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	evaluationsTotal   prometheus.Counter
	evaluationDuration prometheus.Histogram
	requiredTotal      *prometheus.CounterVec
	waivedTotal        *prometheus.CounterVec
	reloadsTotal       *prometheus.CounterVec
	catalogDocuments   prometheus.Gauge
}

// NewCollector creates a collector and registers its metrics with the
// given registry. A nil registry gets a fresh one.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "docmatrix"
	}

	c := &Collector{
		registry: registry,

		evaluationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "evaluations_total",
			Help:      "Total number of checklist evaluations",
		}),

		evaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of checklist evaluations in seconds",
			// Evaluation is pure in-memory matching; sub-millisecond is the norm.
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
		}),

		requiredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "documents_required_total",
			Help:      "Times a document came out as required",
		}, []string{"document"}),

		waivedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "documents_waived_total",
			Help:      "Times a document was waived by a matching rule",
		}, []string{"document"}),

		reloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts by result",
		}, []string{"result"}),

		catalogDocuments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "catalog_documents",
			Help:      "Number of documents in the active catalog",
		}),
	}

	registry.MustRegister(
		c.evaluationsTotal,
		c.evaluationDuration,
		c.requiredTotal,
		c.waivedTotal,
		c.reloadsTotal,
		c.catalogDocuments,
	)

	return c
}

// RecordEvaluation records one evaluation and its per-document outcomes.
func (c *Collector) RecordEvaluation(duration time.Duration, required, waived []string) {
	c.evaluationsTotal.Inc()
	c.evaluationDuration.Observe(duration.Seconds())
	for _, code := range required {
		c.requiredTotal.WithLabelValues(code).Inc()
	}
	for _, code := range waived {
		c.waivedTotal.WithLabelValues(code).Inc()
	}
}

// RecordReload records a catalog reload attempt. On success, documents is
// the size of the new catalog.
func (c *Collector) RecordReload(success bool, documents int) {
	if success {
		c.reloadsTotal.WithLabelValues("success").Inc()
		c.catalogDocuments.Set(float64(documents))
		return
	}
	c.reloadsTotal.WithLabelValues("error").Inc()
}

// Handler returns the Prometheus scrape handler for this collector's
// registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
