package index

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the work of one index. Every index has its own registry
// so several can live in one process (and in tests).
type Metrics struct {
	Registry         *prometheus.Registry
	Indexed          prometheus.Counter
	Queries          prometheus.Counter
	StructuralPrunes prometheus.Counter
	VectorPrunes     prometheus.Counter
	Candidates       prometheus.Counter
	Features         *prometheus.GaugeVec
	Bytes            prometheus.Gauge
	Vectorize        prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Indexed: f.NewCounter(prometheus.CounterOpts{
			Name: "gidx_indexed_graphs_total",
			Help: "Corpus graphs vectorized into the index.",
		}),
		Queries: f.NewCounter(prometheus.CounterOpts{
			Name: "gidx_queries_total",
			Help: "Query graphs filtered against the index.",
		}),
		StructuralPrunes: f.NewCounter(prometheus.CounterOpts{
			Name: "gidx_structural_prunes_total",
			Help: "Query and corpus pairs rejected by node, edge or degree counts.",
		}),
		VectorPrunes: f.NewCounter(prometheus.CounterOpts{
			Name: "gidx_vector_prunes_total",
			Help: "Query and corpus pairs rejected by feature vector domination.",
		}),
		Candidates: f.NewCounter(prometheus.CounterOpts{
			Name: "gidx_candidates_total",
			Help: "Query and corpus pairs emitted as candidates.",
		}),
		Features: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gidx_features",
			Help: "Selected features by kind.",
		}, []string{"kind"}),
		Bytes: f.NewGauge(prometheus.GaugeOpts{
			Name: "gidx_index_bytes",
			Help: "Approximate memory held by the index rows.",
		}),
		Vectorize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gidx_vectorize_seconds",
			Help:    "Time to vectorize a batch of graphs.",
			Buckets: prometheus.ExponentialBuckets(.001, 4, 10),
		}),
	}
}

// WriteFile writes the registry in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
