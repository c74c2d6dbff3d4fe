// Package metrics exposes Prometheus counters for statement processing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Page outcomes and statement statuses used as label values.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"

	StatusOK    = "ok"
	StatusFatal = "fatal"
)

// Recorder owns a private registry so several recorders can coexist in tests.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	pages        *prometheus.CounterVec
	pageDuration prometheus.Histogram
	statements   *prometheus.CounterVec
}

// New builds a Recorder with the Go runtime collector attached.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_pages_total",
			Help: "Statement pages processed, by outcome.",
		}, []string{"outcome"}),
		pageDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statement_page_duration_seconds",
			Help:    "Time spent extracting and parsing one page.",
			Buckets: prometheus.DefBuckets,
		}),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_requests_total",
			Help: "Statements processed, by status.",
		}, []string{"status"}),
	}

	r.registry.MustRegister(
		r.pages,
		r.pageDuration,
		r.statements,
		collectors.NewGoCollector(),
	)
	return r
}

// ObservePage records one processed page.
func (r *Recorder) ObservePage(ok bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeFailed
	}
	r.pages.WithLabelValues(outcome).Inc()
	r.pageDuration.Observe(elapsed.Seconds())
}

// ObserveStatement records one statement run with the given status.
func (r *Recorder) ObserveStatement(status string) {
	if r == nil {
		return
	}
	r.statements.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
