package reporters

import (
	"github.com/timtadh/gidx/types/graph"
)

// Query is the filtering result for one query graph. Positions index the
// corpus, Ids are the corpus graph ids at those positions.
type Query struct {
	Idx       int
	Graph     *graph.Graph
	Positions []int
	Ids       []int
}

type Reporter interface {
	Report(*Query) error
	Close() error
}
