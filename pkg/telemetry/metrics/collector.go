// Package metrics exposes Prometheus metrics for the document
// generation pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "scrivener"
)

// Collector registers and records the pipeline's Prometheus metrics.
//
// Metrics:
//   - scrivener_documents_generated_total: documents generated, by policy code and status
//   - scrivener_generation_duration_seconds: end-to-end generation duration
//   - scrivener_rules_evaluated_total: rule evaluations, by outcome (matched/unmatched)
//   - scrivener_clauses_selected: clauses per document after reconciliation, by disposition
//   - scrivener_render_warnings_total: template warnings surfaced during rendering
//   - scrivener_library_reloads_total: library reloads, by result
type Collector struct {
	registry *prometheus.Registry

	documentsGenerated *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	rulesEvaluated     *prometheus.CounterVec
	clausesSelected    *prometheus.HistogramVec
	renderWarnings     prometheus.Counter
	libraryReloads     *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics. A nil
// registry gets a fresh private one.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		documentsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_generated_total",
				Help:      "Total number of documents generated",
			},
			[]string{"policy_code", "status"},
		),

		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "End-to-end document generation duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to 8s
			},
			[]string{"policy_code"},
		),

		rulesEvaluated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rules_evaluated_total",
				Help:      "Total number of rule evaluations",
			},
			[]string{"outcome"},
		),

		clausesSelected: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "clauses_selected",
				Help:      "Clauses per document after reconciliation",
				Buckets:   prometheus.LinearBuckets(0, 5, 12), // 0 to 55
			},
			[]string{"disposition"},
		),

		renderWarnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "render_warnings_total",
				Help:      "Template warnings surfaced during clause rendering",
			},
		),

		libraryReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "library_reloads_total",
				Help:      "Clause library reloads",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		c.documentsGenerated,
		c.generationDuration,
		c.rulesEvaluated,
		c.clausesSelected,
		c.renderWarnings,
		c.libraryReloads,
	)
	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordGeneration records a completed (or failed) document generation.
func (c *Collector) RecordGeneration(policyCode, status string, duration time.Duration) {
	c.documentsGenerated.WithLabelValues(policyCode, status).Inc()
	c.generationDuration.WithLabelValues(policyCode).Observe(duration.Seconds())
}

// RecordRuleEvaluations records the outcome counts of an engine run.
func (c *Collector) RecordRuleEvaluations(matched, unmatched int) {
	c.rulesEvaluated.WithLabelValues("matched").Add(float64(matched))
	c.rulesEvaluated.WithLabelValues("unmatched").Add(float64(unmatched))
}

// RecordClauseSelection records post-reconciliation clause counts.
func (c *Collector) RecordClauseSelection(included, excluded int) {
	c.clausesSelected.WithLabelValues("included").Observe(float64(included))
	c.clausesSelected.WithLabelValues("excluded").Observe(float64(excluded))
}

// RecordRenderWarnings adds to the template warning counter.
func (c *Collector) RecordRenderWarnings(n int) {
	if n > 0 {
		c.renderWarnings.Add(float64(n))
	}
}

// RecordLibraryReload records one reload attempt.
func (c *Collector) RecordLibraryReload(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	c.libraryReloads.WithLabelValues(result).Inc()
}
