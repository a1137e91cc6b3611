package vector

import (
	"fmt"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gidx/feature"
	"github.com/timtadh/gidx/pool"
	"github.com/timtadh/gidx/types/graph"
)

// Vector has one column per feature of a feature.Set. Edge columns count
// occurrences, path2 columns are 0 or 1.
type Vector []int

type Metadata struct {
	Nodes, Edges, MaxDegree int
}

// Oracle decides whether pattern embeds into host with equal vertex and
// edge labels.
type Oracle interface {
	Contains(pattern, host *graph.Graph) bool
}

func MetadataOf(g *graph.Graph) Metadata {
	return Metadata{
		Nodes:     len(g.V),
		Edges:     len(g.E),
		MaxDegree: g.MaxDegree(),
	}
}

// Fits is true when m is no larger than o in nodes, edges and max degree,
// which every subgraph of a graph described by o satisfies.
func (m Metadata) Fits(o Metadata) bool {
	return m.Nodes <= o.Nodes && m.Edges <= o.Edges && m.MaxDegree <= o.MaxDegree
}

func (m Metadata) String() string {
	return fmt.Sprintf("<nodes: %v, edges: %v, max-degree: %v>", m.Nodes, m.Edges, m.MaxDegree)
}

// DominatedBy is true when no column of v exceeds the same column of o. The
// vectors must come from the same feature set.
func (v Vector) DominatedBy(o Vector) bool {
	for j := range v {
		if v[j] > o[j] {
			return false
		}
	}
	return true
}

func (v Vector) Equals(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for j := range v {
		if v[j] != o[j] {
			return false
		}
	}
	return true
}

// Vectorizer computes vectors against a fixed feature set. Path2 patterns
// are built once, so a Vectorizer should be shared by every graph of a run.
// It is safe for concurrent use when the oracle is.
type Vectorizer struct {
	Features feature.Set
	oracle   Oracle
	edges    map[feature.Edge]int
	paths    []int
	patterns []*graph.Graph
}

func NewVectorizer(features feature.Set, oracle Oracle) (*Vectorizer, error) {
	v := &Vectorizer{
		Features: features,
		oracle:   oracle,
		edges:    make(map[feature.Edge]int),
		paths:    make([]int, 0, len(features)),
		patterns: make([]*graph.Graph, 0, len(features)),
	}
	for col, f := range features {
		switch x := f.(type) {
		case feature.Edge:
			v.edges[x] = col
		case feature.Path2:
			p, err := feature.ToPattern(x)
			if err != nil {
				return nil, err
			}
			v.paths = append(v.paths, col)
			v.patterns = append(v.patterns, p)
		default:
			return nil, &feature.UnknownFeatureKind{Feature: f}
		}
	}
	if len(v.paths) > 0 && oracle == nil {
		return nil, errors.Errorf("a containment oracle is required for %v path features", len(v.paths))
	}
	return v, nil
}

func (v *Vectorizer) Vectorize(g *graph.Graph) (Vector, Metadata) {
	vec := make(Vector, len(v.Features))
	for f, count := range feature.EdgeCounts(g) {
		if col, has := v.edges[f]; has {
			vec[col] = count
		}
	}
	for i, col := range v.paths {
		if v.oracle.Contains(v.patterns[i], g) {
			vec[col] = 1
		}
	}
	return vec, MetadataOf(g)
}

// VectorizeAll vectorizes graphs in parallel. Row i belongs to graphs[i].
func (v *Vectorizer) VectorizeAll(graphs []*graph.Graph, workers int) ([]Vector, []Metadata) {
	vecs := make([]Vector, len(graphs))
	meta := make([]Metadata, len(graphs))
	pool.ForEach(len(graphs), workers, func(i int) error {
		vecs[i], meta[i] = v.Vectorize(graphs[i])
		return nil
	})
	return vecs, meta
}
