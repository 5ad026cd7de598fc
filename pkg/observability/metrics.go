package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/dag2langgraph/pkg/domain"
)

// Outcome labels for successes; rejections use their error kind.
const (
	OutcomeConverted = "converted"
	OutcomeValid     = "valid"
)

// Metrics holds the converter collectors.
type Metrics struct {
	conversions *prometheus.CounterVec
	validations *prometheus.CounterVec
	duration    prometheus.Histogram
	graphNodes  prometheus.Histogram
	cacheHits   prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dag2langgraph_conversions_total",
				Help: "Total number of conversions by outcome",
			},
			[]string{"outcome"},
		),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dag2langgraph_validations_total",
				Help: "Total number of validation-only requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dag2langgraph_conversion_duration_seconds",
			Help:    "Duration of conversions, cache hits included",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		graphNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dag2langgraph_graph_nodes",
			Help:    "Number of nodes in successfully converted graphs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dag2langgraph_cache_hits_total",
			Help: "Total number of conversions served from the result cache",
		}),
	}

	for _, c := range []prometheus.Collector{m.conversions, m.validations, m.duration, m.graphNodes, m.cacheHits} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns converter callbacks that update the collectors.
func (m *Metrics) Hooks() domain.ConversionHooks {
	return domain.ConversionHooks{
		OnConverted: func(_ context.Context, ev *domain.ConversionEvent) {
			m.conversions.WithLabelValues(OutcomeConverted).Inc()
			m.graphNodes.Observe(float64(ev.Nodes))
			m.observe(ev)
		},
		OnRejected: func(_ context.Context, ev *domain.ConversionEvent) {
			m.conversions.WithLabelValues(string(ev.Kind)).Inc()
			m.observe(ev)
		},
		OnValidated: func(_ context.Context, ev *domain.ConversionEvent) {
			outcome := OutcomeValid
			if ev.Kind != "" {
				outcome = string(ev.Kind)
			}
			m.validations.WithLabelValues(outcome).Inc()
		},
	}
}

func (m *Metrics) observe(ev *domain.ConversionEvent) {
	m.duration.Observe(ev.Duration.Seconds())
	if ev.Cached {
		m.cacheHits.Inc()
	}
}
