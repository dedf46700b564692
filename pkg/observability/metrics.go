package observability

import (
	"context"
	"errors"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons reported by the failures counter.
const (
	ReasonLimit    = "limit"
	ReasonCanceled = "canceled"
	ReasonDeadline = "deadline"
	ReasonOther    = "other"
)

// Metrics holds the Prometheus collectors fed by construction hooks.
type Metrics struct {
	Conversions *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Subsets     prometheus.Histogram
	Duration    prometheus.Histogram
	Discovered  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "powerset_conversions_total",
				Help: "Total number of subset constructions, by result",
			},
			[]string{"result"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "powerset_conversion_failures_total",
				Help: "Failed subset constructions, by reason",
			},
			[]string{"reason"},
		),
		Subsets: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "powerset_dfa_states",
				Help:    "Number of DFA states produced per successful construction",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "powerset_conversion_duration_seconds",
				Help:    "Duration of subset constructions",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		Discovered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "powerset_subsets_discovered_total",
				Help: "Total number of subsets discovered across all constructions",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Conversions, m.Failures, m.Subsets, m.Duration, m.Discovered)
	}
	return m
}

// Hooks returns construction hooks that record into m.
func (m *Metrics) Hooks() domain.ConstructionHooks {
	return domain.ConstructionHooks{
		OnSubsetDiscovered: func(ctx context.Context, e *domain.SubsetEvent) {
			m.Discovered.Inc()
		},
		OnDone: func(ctx context.Context, e *domain.DoneEvent) {
			m.Duration.Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.Conversions.WithLabelValues("error").Inc()
				m.Failures.WithLabelValues(Reason(e.Err)).Inc()
				return
			}
			m.Conversions.WithLabelValues("ok").Inc()
			m.Subsets.Observe(float64(e.States))
		},
	}
}

// Reason classifies a construction error for the failures counter.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnboundedConstruction):
		return ReasonLimit
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonDeadline
	default:
		return ReasonOther
	}
}
