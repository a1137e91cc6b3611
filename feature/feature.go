package feature

import (
	"fmt"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

type Kind int

const (
	EdgeKind Kind = iota
	Path2Kind
)

func (k Kind) String() string {
	switch k {
	case EdgeKind:
		return "edge"
	case Path2Kind:
		return "path2"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Feature is a small substructure used as one column of a feature vector.
// Edge and Path2 are the only implementations. Values are canonical, so two
// features describe the same substructure exactly when they are ==.
type Feature interface {
	Kind() Kind
	Label() string
	String() string
	isFeature()
}

// Edge is a labeled edge between vertices labeled A and B, with A <= B.
type Edge struct {
	A, E, B string
}

// Path2 is a two edge path through a center vertex labeled C. The arm
// (L1, E1) is never greater than the arm (L2, E2).
type Path2 struct {
	L1, E1 string
	C      string
	E2, L2 string
}

type Set []Feature

func NewEdge(a, e, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, E: e, B: b}
}

func NewPath2(l1, e1, c, e2, l2 string) Path2 {
	if l2 < l1 || (l2 == l1 && e2 < e1) {
		l1, e1, l2, e2 = l2, e2, l1, e1
	}
	return Path2{L1: l1, E1: e1, C: c, E2: e2, L2: l2}
}

func (Edge) Kind() Kind  { return EdgeKind }
func (Path2) Kind() Kind { return Path2Kind }
func (Edge) isFeature()  {}
func (Path2) isFeature() {}

func (f Edge) Label() string {
	return strings.Join([]string{"E", f.A, f.E, f.B}, "\t")
}

func (f Path2) Label() string {
	return strings.Join([]string{"P2", f.L1, f.E1, f.C, f.E2, f.L2}, "\t")
}

func (f Edge) String() string {
	return fmt.Sprintf("(%v)-[%v]-(%v)", f.A, f.E, f.B)
}

func (f Path2) String() string {
	return fmt.Sprintf("(%v)-[%v]-(%v)-[%v]-(%v)", f.L1, f.E1, f.C, f.E2, f.L2)
}

// Parse reads the form written by Label. The result is canonical even when
// the label was not.
func Parse(label string) (Feature, error) {
	parts := strings.Split(label, "\t")
	switch {
	case parts[0] == "E" && len(parts) == 4:
		return NewEdge(parts[1], parts[2], parts[3]), nil
	case parts[0] == "P2" && len(parts) == 6:
		return NewPath2(parts[1], parts[2], parts[3], parts[4], parts[5]), nil
	}
	return nil, errors.Errorf("could not parse feature label %q", label)
}

func (s Set) Count(kind Kind) int {
	c := 0
	for _, f := range s {
		if f.Kind() == kind {
			c++
		}
	}
	return c
}

func (s Set) String() string {
	items := make([]string, 0, len(s))
	for _, f := range s {
		items = append(items, f.String())
	}
	return fmt.Sprintf("[%v]", strings.Join(items, ", "))
}
