// Package metrics exposes Prometheus collectors for document loading,
// relationship validation and decision-language scans.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/archgov/decision"
	"github.com/c360studio/archgov/relations"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "archgov"

// Collector owns the archgov metrics and the registry they live in.
//
// Metrics:
//   - archgov_documents_loaded: Governed documents in the last load
//   - archgov_files_skipped: Unreadable files in the last load
//   - archgov_load_duration_seconds: Time spent loading the document root
//   - archgov_violations: Violations by check in the last validation
//   - archgov_dependency_cycles: Cycles found in the last validation
//   - archgov_validation_runs_total: Validation runs by result
//   - archgov_decision_outcomes_total: Scanned statements by outcome
//   - archgov_cache_entries: Parsed files held by the loader cache
//   - archgov_watch_events_dropped: Change events dropped by the watcher
type Collector struct {
	registry *prometheus.Registry

	documentsLoaded prometheus.Gauge
	filesSkipped    prometheus.Gauge
	loadDuration    prometheus.Histogram

	violations     *prometheus.GaugeVec
	cycles         prometheus.Gauge
	validationRuns *prometheus.CounterVec

	decisionOutcomes *prometheus.CounterVec

	cacheEntries  prometheus.Gauge
	eventsDropped prometheus.Gauge
}

// NewCollector creates and registers the metrics. A nil registry gets a
// fresh one; an empty namespace uses DefaultNamespace.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		documentsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents_loaded",
			Help:      "Number of governed documents in the last load",
		}),
		filesSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "files_skipped",
			Help:      "Number of unreadable files in the last load",
		}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time spent loading the document root",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		violations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "violations",
				Help:      "Number of violations by check in the last validation",
			},
			[]string{"check"},
		),
		cycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dependency_cycles",
			Help:      "Number of dependency cycles in the last validation",
		}),
		validationRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_runs_total",
				Help:      "Total validation runs by result",
			},
			[]string{"result"},
		),

		decisionOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decision_outcomes_total",
				Help:      "Total scanned statements by enforcement outcome",
			},
			[]string{"outcome"},
		),

		cacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of parsed files in the loader cache",
		}),
		eventsDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "watch_events_dropped",
			Help:      "Change events dropped because the consumer fell behind",
		}),
	}

	registry.MustRegister(
		c.documentsLoaded,
		c.filesSkipped,
		c.loadDuration,
		c.violations,
		c.cycles,
		c.validationRuns,
		c.decisionOutcomes,
		c.cacheEntries,
		c.eventsDropped,
	)

	return c
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordLoad records the outcome of one repository load.
func (c *Collector) RecordLoad(documents, skipped int, duration time.Duration) {
	c.documentsLoaded.Set(float64(documents))
	c.filesSkipped.Set(float64(skipped))
	c.loadDuration.Observe(duration.Seconds())
}

// RecordReport replaces the violation gauges with the counts of r. Checks
// absent from r are reset to zero so fixed violations disappear.
func (c *Collector) RecordReport(r *relations.Report) {
	counts := r.Counts()
	for _, check := range relations.Checks {
		c.violations.WithLabelValues(string(check)).Set(float64(counts[check]))
	}
	c.cycles.Set(float64(len(r.Cycles())))

	result := "passed"
	if !r.Passed() {
		result = "failed"
	}
	c.validationRuns.WithLabelValues(result).Inc()
}

// RecordFindings counts scan findings by outcome.
func (c *Collector) RecordFindings(findings []decision.Finding) {
	for outcome, n := range decision.Summary(findings) {
		c.decisionOutcomes.WithLabelValues(string(outcome)).Add(float64(n))
	}
}

// UpdateCacheEntries sets the loader cache size.
func (c *Collector) UpdateCacheEntries(n int) {
	c.cacheEntries.Set(float64(n))
}

// UpdateDroppedEvents sets the watcher's dropped event count.
func (c *Collector) UpdateDroppedEvents(n int64) {
	c.eventsDropped.Set(float64(n))
}
