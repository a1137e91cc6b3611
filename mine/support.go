package mine

import (
	"github.com/timtadh/gidx/feature"
	"github.com/timtadh/gidx/pool"
	"github.com/timtadh/gidx/types/graph"
)

// Support counts, for every feature, the number of graphs it occurs in.
// A Support is not safe for concurrent use; build one per shard and Merge.
type Support struct {
	counts map[feature.Feature]int
	graphs int
}

func NewSupport() *Support {
	return &Support{
		counts: make(map[feature.Feature]int),
	}
}

// Add counts each distinct feature of g once.
func (s *Support) Add(g *graph.Graph) {
	for f := range feature.EdgeCounts(g) {
		s.counts[f]++
	}
	for _, f := range feature.Path2Features(g) {
		s.counts[f]++
	}
	s.graphs++
}

// Merge adds the counts of o into s and returns s.
func (s *Support) Merge(o *Support) *Support {
	for f, c := range o.counts {
		s.counts[f] += c
	}
	s.graphs += o.graphs
	return s
}

func (s *Support) Of(f feature.Feature) int {
	return s.counts[f]
}

// Len is the number of distinct features seen.
func (s *Support) Len() int {
	return len(s.counts)
}

// Graphs is the number of graphs added.
func (s *Support) Graphs() int {
	return s.graphs
}

func (s *Support) Each(do func(f feature.Feature, support int)) {
	for f, c := range s.counts {
		do(f, c)
	}
}

// Count builds the support of corpus with one accumulator per worker shard.
func Count(corpus []*graph.Graph, workers int) *Support {
	shards := pool.Shards(len(corpus), workers)
	parts := make([]*Support, len(shards))
	pool.ForEach(len(shards), workers, func(i int) error {
		s := NewSupport()
		for _, g := range corpus[shards[i][0]:shards[i][1]] {
			s.Add(g)
		}
		parts[i] = s
		return nil
	})
	total := NewSupport()
	for _, p := range parts {
		total.Merge(p)
	}
	return total
}
