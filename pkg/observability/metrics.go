package observability

import (
	"context"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors describing engine activity.
type Metrics struct {
	StepsEntered *prometheus.CounterVec
	StepsIgnored *prometheus.CounterVec
	Swaps        *prometheus.CounterVec
	Renders      *prometheus.CounterVec
	Handling     prometheus.Histogram
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		StepsEntered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrolly_steps_entered_total",
				Help: "Step-enter events that changed the active step",
			},
			[]string{"content_type"},
		),
		StepsIgnored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrolly_steps_ignored_total",
				Help: "Step-enter events dropped without effect",
			},
			[]string{"reason"},
		),
		Swaps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrolly_swaps_total",
				Help: "Sticky container swaps",
			},
			[]string{"to"},
		),
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrolly_renders_total",
				Help: "Content renders by type and whether they waited for a swap",
			},
			[]string{"content_type", "deferred"},
		),
		Handling: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scrolly_step_handling_seconds",
				Help:    "Synchronous handling time of one step-enter event",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.StepsEntered, m.StepsIgnored, m.Swaps, m.Renders, m.Handling} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.StepsEntered.WithLabelValues(string(e.Content)).Inc()
			m.Handling.Observe(e.Elapsed.Seconds())
		},
		OnStepIgnored: func(_ context.Context, e *domain.StepEvent) {
			m.StepsIgnored.WithLabelValues(string(e.Reason)).Inc()
		},
		OnSwap: func(_ context.Context, e *domain.SwapEvent) {
			m.Swaps.WithLabelValues(string(e.To)).Inc()
		},
		OnRender: func(_ context.Context, e *domain.RenderEvent) {
			deferred := "false"
			if e.Deferred {
				deferred = "true"
			}
			m.Renders.WithLabelValues(string(e.Content), deferred).Inc()
		},
	}
}
