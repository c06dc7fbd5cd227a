package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry       *prometheus.Registry
	scans          *prometheus.CounterVec
	moduleRuns     *prometheus.CounterVec
	moduleDuration *prometheus.HistogramVec
	entities       *prometheus.CounterVec
	findings       *prometheus.CounterVec
}

func New(runtimeMetrics bool) *Metrics {
	reg := prometheus.NewRegistry()
	if runtimeMetrics {
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		reg.MustRegister(collectors.NewGoCollector())
	}
	m := &Metrics{
		registry: reg,
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "osint_scans_total",
			Help: "Scans that reached a terminal status.",
		}, []string{"status"}),
		moduleRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "osint_module_runs_total",
			Help: "Module invocations by outcome.",
		}, []string{"module", "outcome"}),
		moduleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "osint_module_duration_seconds",
			Help:    "Module run latency.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"module"}),
		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "osint_entities_resolved_total",
			Help: "Entity resolutions by entity type.",
		}, []string{"type"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "osint_findings_recorded_total",
			Help: "Findings recorded by source.",
		}, []string{"source"}),
	}
	reg.MustRegister(m.scans, m.moduleRuns, m.moduleDuration, m.entities, m.findings)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ScanFinished(status string) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(status).Inc()
}

func (m *Metrics) ModuleRun(module, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.moduleRuns.WithLabelValues(module, outcome).Inc()
	m.moduleDuration.WithLabelValues(module).Observe(took.Seconds())
}

func (m *Metrics) EntityResolved(entityType string) {
	if m == nil {
		return
	}
	m.entities.WithLabelValues(entityType).Inc()
}

func (m *Metrics) FindingRecorded(source string) {
	if m == nil {
		return
	}
	m.findings.WithLabelValues(source).Inc()
}
