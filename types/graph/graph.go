package graph

import (
	"fmt"
)

// Graph is an undirected graph with labeled vertices and edges. Graphs are
// built once with a Builder and are read only afterwards, so they can be
// shared between goroutines.
type Graph struct {
	Id     int
	V      Vertices
	E      Edges
	Adj    [][]int
	ids    map[int]int
	pairs  map[pair]int
	labels map[string][]int
}

type Vertices []Vertex
type Edges []Edge

type Vertex struct {
	Idx   int
	Id    int
	Label string
}

// Src and Targ are vertex indices (not ids). The order carries no meaning.
type Edge struct {
	Src, Targ int
	Label     string
}

type pair struct {
	a, b int
}

func mkpair(u, v int) pair {
	if v < u {
		return pair{v, u}
	}
	return pair{u, v}
}

// MalformedGraphRecord is returned when a record cannot form a valid graph:
// a duplicated vertex id, an edge to an unknown vertex id, or a self-loop.
type MalformedGraphRecord struct {
	Graph  int
	Reason string
}

func (m *MalformedGraphRecord) Error() string {
	return fmt.Sprintf("malformed graph record %v: %v", m.Graph, m.Reason)
}

type Builder struct {
	Id    int
	V     Vertices
	E     Edges
	ids   map[int]int
	pairs map[pair]int
}

func Build(id, V, E int) *Builder {
	return &Builder{
		Id:    id,
		V:     make(Vertices, 0, V),
		E:     make(Edges, 0, E),
		ids:   make(map[int]int, V),
		pairs: make(map[pair]int, E),
	}
}

func (b *Builder) Ctx(do func(*Builder) error) (*Builder, error) {
	if err := do(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Builder) malformed(format string, args ...interface{}) error {
	return &MalformedGraphRecord{Graph: b.Id, Reason: fmt.Sprintf(format, args...)}
}

func (b *Builder) AddVertex(id int, label string) (*Vertex, error) {
	if id < 0 {
		return nil, b.malformed("negative vertex id %v", id)
	}
	if _, has := b.ids[id]; has {
		return nil, b.malformed("duplicate vertex id %v", id)
	}
	idx := len(b.V)
	b.ids[id] = idx
	b.V = append(b.V, Vertex{
		Idx:   idx,
		Id:    id,
		Label: label,
	})
	return &b.V[idx], nil
}

// AddEdge connects the vertices with the given ids. Adding a second edge
// between the same pair replaces the label of the first one.
func (b *Builder) AddEdge(srcId, targId int, label string) (*Edge, error) {
	src, has := b.ids[srcId]
	if !has {
		return nil, b.malformed("edge (%v, %v) references unknown vertex %v", srcId, targId, srcId)
	}
	targ, has := b.ids[targId]
	if !has {
		return nil, b.malformed("edge (%v, %v) references unknown vertex %v", srcId, targId, targId)
	}
	if src == targ {
		return nil, b.malformed("self-loop on vertex %v", srcId)
	}
	p := mkpair(src, targ)
	if eidx, has := b.pairs[p]; has {
		b.E[eidx].Label = label
		return &b.E[eidx], nil
	}
	eidx := len(b.E)
	b.pairs[p] = eidx
	b.E = append(b.E, Edge{
		Src:   src,
		Targ:  targ,
		Label: label,
	})
	return &b.E[eidx], nil
}

func (b *Builder) Build() *Graph {
	g := &Graph{
		Id:     b.Id,
		V:      make(Vertices, len(b.V)),
		E:      make(Edges, len(b.E)),
		Adj:    make([][]int, len(b.V)),
		ids:    make(map[int]int, len(b.V)),
		pairs:  make(map[pair]int, len(b.E)),
		labels: make(map[string][]int),
	}
	copy(g.V, b.V)
	copy(g.E, b.E)
	for idx := range g.V {
		u := &g.V[idx]
		g.ids[u.Id] = idx
		g.labels[u.Label] = append(g.labels[u.Label], idx)
		g.Adj[idx] = make([]int, 0, 4)
	}
	for eidx := range g.E {
		e := &g.E[eidx]
		g.pairs[mkpair(e.Src, e.Targ)] = eidx
		g.Adj[e.Src] = append(g.Adj[e.Src], eidx)
		g.Adj[e.Targ] = append(g.Adj[e.Targ], eidx)
	}
	return g
}

// Index returns the vertex index of the vertex with the given id.
func (g *Graph) Index(id int) (int, bool) {
	idx, has := g.ids[id]
	return idx, has
}

// EdgeBetween returns the index of the edge joining vertex indices u and v.
func (g *Graph) EdgeBetween(u, v int) (int, bool) {
	eidx, has := g.pairs[mkpair(u, v)]
	return eidx, has
}

// Labeled lists the indices of the vertices carrying label.
func (g *Graph) Labeled(label string) []int {
	return g.labels[label]
}

// LabelFrequency is the number of vertices carrying label.
func (g *Graph) LabelFrequency(label string) int {
	return len(g.labels[label])
}

func (g *Graph) Degree(idx int) int {
	return len(g.Adj[idx])
}

func (g *Graph) MaxDegree() int {
	max := 0
	for idx := range g.Adj {
		if d := len(g.Adj[idx]); d > max {
			max = d
		}
	}
	return max
}

// Other returns the endpoint of edge eidx which is not idx.
func (g *Graph) Other(eidx, idx int) int {
	e := &g.E[eidx]
	if e.Src == idx {
		return e.Targ
	}
	return e.Src
}

// Neighbors returns the vertex indices adjacent to idx in edge order.
func (g *Graph) Neighbors(idx int) []int {
	nbrs := make([]int, 0, len(g.Adj[idx]))
	for _, eidx := range g.Adj[idx] {
		nbrs = append(nbrs, g.Other(eidx, idx))
	}
	return nbrs
}
