package feature

import (
	"fmt"
)

import (
	"github.com/timtadh/gidx/types/graph"
)

// UnknownFeatureKind is returned when a Feature is neither an Edge nor a
// Path2. Only code in this package can produce one.
type UnknownFeatureKind struct {
	Feature Feature
}

func (u *UnknownFeatureKind) Error() string {
	return fmt.Sprintf("unknown feature kind %T", u.Feature)
}

// ToPattern builds the pattern graph a feature describes. Edge features
// become vertices 0:A and 1:B joined by E. Path2 features become the path
// 0:L1 -E1- 1:C -E2- 2:L2.
func ToPattern(f Feature) (*graph.Graph, error) {
	var b *graph.Builder
	var err error
	switch x := f.(type) {
	case Edge:
		b, err = graph.Build(0, 2, 1).Ctx(func(b *graph.Builder) error {
			b.AddVertex(0, x.A)
			b.AddVertex(1, x.B)
			_, err := b.AddEdge(0, 1, x.E)
			return err
		})
	case Path2:
		b, err = graph.Build(0, 3, 2).Ctx(func(b *graph.Builder) error {
			b.AddVertex(0, x.L1)
			b.AddVertex(1, x.C)
			b.AddVertex(2, x.L2)
			if _, err := b.AddEdge(0, 1, x.E1); err != nil {
				return err
			}
			_, err := b.AddEdge(1, 2, x.E2)
			return err
		})
	default:
		return nil, &UnknownFeatureKind{Feature: f}
	}
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// Patterns converts every feature of the set, keeping column order.
func Patterns(set Set) ([]*graph.Graph, error) {
	patterns := make([]*graph.Graph, 0, len(set))
	for _, f := range set {
		p, err := ToPattern(f)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
