package index

import (
	"time"
)

import (
	"github.com/DmitriyVTitov/size"
	"github.com/dustin/go-humanize"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/feature"
	"github.com/timtadh/gidx/mine"
	"github.com/timtadh/gidx/types/graph"
	"github.com/timtadh/gidx/vector"
)

// Index is a vectorized corpus. Row i of Vectors, Meta and Ids describes
// the corpus graph at position i.
type Index struct {
	Features   feature.Set
	Vectors    []vector.Vector
	Meta       []vector.Metadata
	Ids        []int
	Induced    bool
	Metrics    *Metrics
	vectorizer *vector.Vectorizer
	workers    int
}

// Build mines the corpus for features and vectorizes every corpus graph.
func Build(corpus []*graph.Graph, conf *config.Config, oracle vector.Oracle) (*Index, error) {
	features, _, err := mine.Mine(corpus, conf.MineOptions(), conf.Workers())
	if err != nil {
		return nil, err
	}
	idx, err := newIndex(features, conf, oracle)
	if err != nil {
		return nil, err
	}
	idx.Vectors, idx.Meta = idx.vectorize(corpus)
	idx.Ids = make([]int, 0, len(corpus))
	for _, g := range corpus {
		idx.Ids = append(idx.Ids, g.Id)
	}
	idx.Metrics.Indexed.Add(float64(len(corpus)))
	idx.measure()
	errors.Logf("INFO", "indexed %v graphs with %v features", humanize.Comma(int64(len(corpus))), len(features))
	return idx, nil
}

func (idx *Index) measure() {
	bytes := size.Of(idx.Vectors) + size.Of(idx.Meta) + size.Of(idx.Ids)
	idx.Metrics.Bytes.Set(float64(bytes))
	errors.Logf("DEBUG", "index rows hold %v", humanize.Bytes(uint64(bytes)))
}

func newIndex(features feature.Set, conf *config.Config, oracle vector.Oracle) (*Index, error) {
	v, err := vector.NewVectorizer(features, oracle)
	if err != nil {
		return nil, err
	}
	m := NewMetrics()
	m.Features.WithLabelValues(feature.EdgeKind.String()).Set(float64(features.Count(feature.EdgeKind)))
	m.Features.WithLabelValues(feature.Path2Kind.String()).Set(float64(features.Count(feature.Path2Kind)))
	return &Index{
		Features:   features,
		Induced:    conf.Induced,
		Metrics:    m,
		vectorizer: v,
		workers:    conf.Workers(),
	}, nil
}

func (idx *Index) vectorize(graphs []*graph.Graph) ([]vector.Vector, []vector.Metadata) {
	start := time.Now()
	vecs, meta := idx.vectorizer.VectorizeAll(graphs, idx.workers)
	idx.Metrics.Vectorize.Observe(time.Since(start).Seconds())
	return vecs, meta
}

// Len is the number of corpus graphs.
func (idx *Index) Len() int {
	return len(idx.Ids)
}

// Candidates vectorizes the queries and returns the corpus positions
// surviving the filter for each of them.
func (idx *Index) Candidates(queries []*graph.Graph) [][]int {
	qv, qm := idx.vectorize(queries)
	cands := generate(qv, qm, idx.Vectors, idx.Meta, idx.workers, idx.Metrics)
	total := 0
	for _, c := range cands {
		total += len(c)
	}
	errors.Logf("DEBUG", "%v queries produced %v candidates from %v corpus graphs",
		len(queries), humanize.Comma(int64(total)), humanize.Comma(int64(idx.Len())))
	return cands
}

// GraphIds maps corpus positions to corpus graph ids.
func (idx *Index) GraphIds(positions []int) []int {
	ids := make([]int, 0, len(positions))
	for _, p := range positions {
		ids = append(ids, idx.Ids[p])
	}
	return ids
}
