// Package metrics exposes Prometheus instrumentation for the
// signature core. The crypto packages stay pure; a Metrics value is
// injected where wanted and everything is a no-op when it is nil.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the instrument set for hypertree key generation and
// signing.
type Metrics struct {
	LeavesGenerated  prometheus.Counter
	TreeBuildSeconds prometheus.Histogram
	SignaturesIssued prometheus.Counter
}

// NewMetrics initializes the Prometheus metrics for the signature core.
func NewMetrics() *Metrics {
	return &Metrics{
		LeavesGenerated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hypertree_leaves_generated_total",
				Help: "Number of hypertree leaf keypairs derived",
			},
		),
		TreeBuildSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hypertree_tree_build_seconds",
				Help:    "Latency of full hypertree construction",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		SignaturesIssued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hypertree_signatures_issued_total",
				Help: "Number of hypertree signatures produced",
			},
		),
	}
}

// Register registers all instruments with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.LeavesGenerated, m.TreeBuildSeconds, m.SignaturesIssued,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
