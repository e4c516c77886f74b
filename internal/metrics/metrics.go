// Package metrics exposes the Prometheus collectors for submissions, round
// transitions, stats computations and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
)

const namespace = "closest"

// Recorder receives measurements from the services and handlers
type Recorder interface {
	// AnswersAccepted counts answers persisted by a submission
	AnswersAccepted(count int)

	// AnswerRejected counts a submission refused with the given kind
	AnswerRejected(kind errs.Kind)

	// RoundStatusChanged counts a transition into status
	RoundStatusChanged(status models.RoundStatus)

	// ObserveComputation records how long a stats computation took
	ObserveComputation(operation string, d time.Duration)

	// ObserveRequest records an HTTP request against its route pattern
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Prometheus implements Recorder with collectors registered on its own registry
type Prometheus struct {
	registry           *prometheus.Registry
	answersAccepted    prometheus.Counter
	answersRejected    *prometheus.CounterVec
	roundTransitions   *prometheus.CounterVec
	computationLatency *prometheus.HistogramVec
	requestLatency     *prometheus.HistogramVec
}

// NewPrometheus creates the collectors on a fresh registry together with
// the Go runtime and process collectors.
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Prometheus{
		registry: registry,
		answersAccepted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answers_accepted_total",
				Help:      "Total number of answers persisted.",
			},
		),
		answersRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answers_rejected_total",
				Help:      "Total number of submissions refused, by error kind.",
			},
			[]string{"kind"},
		),
		roundTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "round_transitions_total",
				Help:      "Total number of round status changes, by new status.",
			},
			[]string{"status"},
		),
		computationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "computation_duration_seconds",
				Help:      "Time spent deriving stats, distributions and views.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status code.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Registry returns the registry to expose on /metrics
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) AnswersAccepted(count int) {
	p.answersAccepted.Add(float64(count))
}

func (p *Prometheus) AnswerRejected(kind errs.Kind) {
	p.answersRejected.WithLabelValues(string(kind)).Inc()
}

func (p *Prometheus) RoundStatusChanged(status models.RoundStatus) {
	p.roundTransitions.WithLabelValues(string(status)).Inc()
}

func (p *Prometheus) ObserveComputation(operation string, d time.Duration) {
	p.computationLatency.WithLabelValues(operation).Observe(d.Seconds())
}

func (p *Prometheus) ObserveRequest(method, route string, status int, d time.Duration) {
	p.requestLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Noop discards every measurement
type Noop struct{}

func (Noop) AnswersAccepted(int) {}
func (Noop) AnswerRejected(errs.Kind) {}
func (Noop) RoundStatusChanged(models.RoundStatus) {}
func (Noop) ObserveComputation(string, time.Duration) {}
func (Noop) ObserveRequest(string, string, int, time.Duration) {}

var (
	_ Recorder = (*Prometheus)(nil)
	_ Recorder = Noop{}
)
