// Package observability exposes converter activity as Prometheus metrics.
//
// Metrics plugs into the converter through domain.ConversionHooks, so the core
// packages never import Prometheus:
//
//	m, err := observability.NewMetrics(prometheus.DefaultRegisterer)
//	if err != nil {
//	    // Handle duplicate registration
//	}
//	conv := dag2langgraph.New(dag2langgraph.WithHooks(m.Hooks()))
package observability
