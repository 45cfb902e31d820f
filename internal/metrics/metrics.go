// Package metrics records landing composition and admin mutation metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reorder outcomes.
const (
	ReorderCommitted  = "committed"
	ReorderRetried    = "retried"
	ReorderRolledBack = "rolled_back"
	ReorderRejected   = "rejected"
	ReorderCanceled   = "canceled"
)

// Recorder is the metrics surface used by the core packages.
type Recorder interface {
	ObserveCompose(duration time.Duration, rendered int)
	SectionSkipped(reason string)
	ReorderOutcome(outcome string)
	CommandResult(command string, err error)
	ObserveHTTP(method, route string, status int, duration time.Duration)
}

// NoOp returns a recorder that discards everything.
func NoOp() Recorder { return noop{} }

type noop struct{}

func (noop) ObserveCompose(time.Duration, int)              {}
func (noop) SectionSkipped(string)                          {}
func (noop) ReorderOutcome(string)                          {}
func (noop) CommandResult(string, error)                    {}
func (noop) ObserveHTTP(string, string, int, time.Duration) {}

// Prometheus implements Recorder with client_golang collectors.
type Prometheus struct {
	composeDuration  prometheus.Histogram
	composedSections prometheus.Histogram
	skippedSections  *prometheus.CounterVec
	reorderOutcomes  *prometheus.CounterVec
	commandResults   *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	gatherer         prometheus.Gatherer
}

// NewPrometheus registers the landing collectors on registry. A nil registry
// gets a private one.
func NewPrometheus(registry *prometheus.Registry, namespace string) *Prometheus {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "landing"
	}
	factory := promauto.With(registry)

	return &Prometheus{
		composeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compose_duration_seconds",
			Help:      "Time spent composing a landing page",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		composedSections: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "composed_sections",
			Help:      "Number of sections rendered per composed page",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		skippedSections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_sections_total",
			Help:      "Sections omitted while composing a page",
		}, []string{"reason"}),
		reorderOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reorder_outcomes_total",
			Help:      "Optimistic reorder results",
		}, []string{"outcome"}),
		commandResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_results_total",
			Help:      "Admin command executions by result",
		}, []string{"command", "result"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: registry,
	}
}

func (p *Prometheus) ObserveCompose(duration time.Duration, rendered int) {
	p.composeDuration.Observe(duration.Seconds())
	p.composedSections.Observe(float64(rendered))
}

func (p *Prometheus) SectionSkipped(reason string) {
	p.skippedSections.WithLabelValues(reason).Inc()
}

func (p *Prometheus) ReorderOutcome(outcome string) {
	p.reorderOutcomes.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) CommandResult(command string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	p.commandResults.WithLabelValues(command, result).Inc()
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

var _ Recorder = (*Prometheus)(nil)
