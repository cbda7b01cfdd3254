// Package observability exposes prometheus instrumentation for the skein
// runtime: tick throughput, queue depth, content delivery and failure
// counters.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the runtime's prometheus collectors. A nil *Metrics is
// valid and records nothing, so instrumentation stays optional.
type Metrics struct {
	Ticks       prometheus.Counter
	Promotions  prometheus.Counter
	Lines       prometheus.Counter
	Choices     prometheus.Counter
	Commands    *prometheus.CounterVec // label: handled ("true"/"false")
	Completions prometheus.Counter
	Failures    *prometheus.CounterVec // label: reason ("asset"/"content")
	QueueDepth  prometheus.Gauge
}

// NewMetrics builds the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skein",
			Name:      "ticks_total",
			Help:      "Runtime ticks processed.",
		}),
		Promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skein",
			Name:      "promotions_total",
			Help:      "Requests promoted from the queue into the runner.",
		}),
		Lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skein",
			Name:      "lines_total",
			Help:      "Dialogue lines delivered.",
		}),
		Choices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skein",
			Name:      "choice_sets_total",
			Help:      "Choice lists presented.",
		}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skein",
			Name:      "commands_total",
			Help:      "Script commands dispatched.",
		}, []string{"handled"}),
		Completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skein",
			Name:      "completions_total",
			Help:      "Dialogue sessions run to completion.",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skein",
			Name:      "failures_total",
			Help:      "Sessions or requests dropped with an error.",
		}, []string{"reason"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skein",
			Name:      "queue_depth",
			Help:      "Pending dialogue requests.",
		}),
	}

	reg.MustRegister(
		m.Ticks, m.Promotions, m.Lines, m.Choices,
		m.Commands, m.Completions, m.Failures, m.QueueDepth,
	)
	return m
}

// ObserveTick increments the tick counter.
func (m *Metrics) ObserveTick() {
	if m == nil {
		return
	}
	m.Ticks.Inc()
}

// ObservePromotion records a queue-to-runner promotion.
func (m *Metrics) ObservePromotion() {
	if m == nil {
		return
	}
	m.Promotions.Inc()
}

// ObserveLine records a delivered line.
func (m *Metrics) ObserveLine() {
	if m == nil {
		return
	}
	m.Lines.Inc()
}

// ObserveChoices records a presented choice list.
func (m *Metrics) ObserveChoices() {
	if m == nil {
		return
	}
	m.Choices.Inc()
}

// ObserveCommand records a dispatched command.
func (m *Metrics) ObserveCommand(handled bool) {
	if m == nil {
		return
	}
	if handled {
		m.Commands.WithLabelValues("true").Inc()
	} else {
		m.Commands.WithLabelValues("false").Inc()
	}
}

// ObserveCompletion records a completed session.
func (m *Metrics) ObserveCompletion() {
	if m == nil {
		return
	}
	m.Completions.Inc()
}

// ObserveFailure records a dropped request or aborted session.
func (m *Metrics) ObserveFailure(reason string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(reason).Inc()
}

// SetQueueDepth updates the pending-request gauge.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}
