// Package metrics exposes Prometheus collectors for game and HTTP activity.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/rpslsgame/internal/model"
)

const namespace = "rpsls"

// Outcome label values
const (
	OutcomeWin = "win"
	OutcomeTie = "tie"
)

// Metrics holds the collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	movesSubmitted prometheus.Counter
	roundsResolved *prometheus.CounterVec
	commandErrors  *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		movesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_submitted_total",
			Help:      "Moves accepted into the open round",
		}),
		roundsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_resolved_total",
			Help:      "Rounds resolved and archived, by outcome",
		}, []string{"outcome"}),
		commandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_errors_total",
			Help:      "Rejected play commands, by error kind",
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.movesSubmitted,
		m.roundsResolved,
		m.commandErrors,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// MoveSubmitted records an accepted move
func (m *Metrics) MoveSubmitted() {
	m.movesSubmitted.Inc()
}

// RoundResolved records an archived round
func (m *Metrics) RoundResolved(tie bool) {
	outcome := OutcomeWin
	if tie {
		outcome = OutcomeTie
	}
	m.roundsResolved.WithLabelValues(outcome).Inc()
}

// CommandFailed records a rejected command under its error kind
func (m *Metrics) CommandFailed(err error) {
	m.commandErrors.WithLabelValues(KindLabel(err)).Inc()
}

// ObserveHTTP records a served request
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// KindLabel returns the label value for an error's kind
func KindLabel(err error) string {
	switch kind := model.Kind(err); {
	case errors.Is(kind, model.ErrBadRequest):
		return "bad_request"
	case errors.Is(kind, model.ErrNotFound):
		return "not_found"
	case errors.Is(kind, model.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
