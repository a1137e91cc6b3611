package subgraph

import (
	"encoding/binary"
	"sort"
)

import (
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/gidx/types/graph"
)

// Matcher decides subgraph containment under label equality on vertices
// and edges. By default a pattern is contained when it has an injective,
// label preserving, edge preserving mapping into the host (monomorphism).
// With Induced set the mapping must also not add edges, which is the
// semantics of VF2's subgraph isomorphism test.
type Matcher struct {
	Induced bool
}

func NewMatcher(induced bool) *Matcher {
	return &Matcher{Induced: induced}
}

func (m *Matcher) Contains(pattern, host *graph.Graph) bool {
	_, found := m.Embedded(pattern, host)
	return found
}

// Embedded finds one embedding of pattern in host.
func (m *Matcher) Embedded(pattern, host *graph.Graph) (emb *Embedding, found bool) {
	m.search(pattern, host, func(e *Embedding) bool {
		emb = e
		found = true
		return false
	})
	return emb, found
}

// Count returns the number of distinct occurrences of pattern in host. Two
// embeddings which cover the same host vertices and edges (automorphic
// images) are one occurrence.
func (m *Matcher) Count(pattern, host *graph.Graph) int {
	seen := hashtable.NewLinearHash()
	m.search(pattern, host, func(emb *Embedding) bool {
		label := types.ByteSlice(image(pattern, host, emb))
		if !seen.Has(label) {
			seen.Put(label, nil)
		}
		return true
	})
	return seen.Size()
}

func depth(emb *Embedding) int {
	if emb == nil {
		return 0
	}
	return emb.Depth
}

// search walks every complete embedding of pattern in host depth first,
// calling do on each until do returns false.
func (m *Matcher) search(pat, host *graph.Graph, do func(*Embedding) bool) {
	if len(pat.V) == 0 {
		do(nil)
		return
	}
	if !m.plausible(pat, host) {
		return
	}
	pop := func(stack []*Embedding) (*Embedding, []*Embedding) {
		return stack[len(stack)-1], stack[0 : len(stack)-1]
	}
	order, parents := vertexOrder(pat, host)
	stack := make([]*Embedding, 0, len(pat.V)*2)
	extend := func(emb *Embedding) {
		pos := depth(emb)
		u := order[pos]
		ids := emb.Slice(len(pat.V))
		for _, cand := range candidates(host, pat.V[u].Label, parents[pos], ids) {
			if !m.feasible(pat, host, u, cand, ids) {
				continue
			}
			v := VertexEmbedding{SgIdx: u, EmbIdx: cand}
			if emb == nil {
				stack = append(stack, StartEmbedding(v))
			} else {
				stack = append(stack, emb.Extend(v))
			}
		}
	}
	extend(nil)
	for len(stack) > 0 {
		var emb *Embedding
		emb, stack = pop(stack)
		if emb.Depth >= len(order) {
			if !do(emb) {
				return
			}
			continue
		}
		extend(emb)
	}
}

// plausible rejects hosts which are too small, or lack enough vertices of
// some pattern label, before any search is done.
func (m *Matcher) plausible(pat, host *graph.Graph) bool {
	if len(pat.V) > len(host.V) || len(pat.E) > len(host.E) {
		return false
	}
	for i := range pat.V {
		label := pat.V[i].Label
		if pat.LabelFrequency(label) > host.LabelFrequency(label) {
			return false
		}
	}
	return true
}

// vertexOrder visits the pattern breadth first, starting each component
// from the vertex whose label is rarest in the host. parents[i] is the
// already ordered neighbor of order[i] or -1 for a component root.
func vertexOrder(pat, host *graph.Graph) (order, parents []int) {
	visited := make([]bool, len(pat.V))
	order = make([]int, 0, len(pat.V))
	parents = make([]int, 0, len(pat.V))
	for len(order) < len(pat.V) {
		start := -1
		for u := range pat.V {
			if visited[u] {
				continue
			}
			if start < 0 {
				start = u
				continue
			}
			f := host.LabelFrequency(pat.V[u].Label)
			sf := host.LabelFrequency(pat.V[start].Label)
			if f < sf || (f == sf && pat.Degree(u) > pat.Degree(start)) {
				start = u
			}
		}
		visited[start] = true
		order = append(order, start)
		parents = append(parents, -1)
		for i := len(order) - 1; i < len(order); i++ {
			u := order[i]
			for _, w := range pat.Neighbors(u) {
				if !visited[w] {
					visited[w] = true
					order = append(order, w)
					parents = append(parents, u)
				}
			}
		}
	}
	return order, parents
}

func candidates(host *graph.Graph, label string, parent int, ids []int) []int {
	if parent < 0 {
		return host.Labeled(label)
	}
	return host.Neighbors(ids[parent])
}

func (m *Matcher) feasible(pat, host *graph.Graph, u, cand int, ids []int) bool {
	if host.V[cand].Label != pat.V[u].Label {
		return false
	}
	if host.Degree(cand) < pat.Degree(u) {
		return false
	}
	for _, id := range ids {
		if id == cand {
			return false
		}
	}
	for _, eidx := range pat.Adj[u] {
		w := pat.Other(eidx, u)
		if ids[w] < 0 {
			continue
		}
		heidx, has := host.EdgeBetween(cand, ids[w])
		if !has || host.E[heidx].Label != pat.E[eidx].Label {
			return false
		}
	}
	if m.Induced {
		for w, id := range ids {
			if id < 0 {
				continue
			}
			if _, adj := pat.EdgeBetween(u, w); adj {
				continue
			}
			if _, has := host.EdgeBetween(cand, id); has {
				return false
			}
		}
	}
	return true
}

// image serializes the host vertices and edges covered by a complete
// embedding so automorphic embeddings serialize identically.
func image(pat, host *graph.Graph, emb *Embedding) []byte {
	ids := emb.Slice(len(pat.V))
	vertices := make([]int, 0, len(ids))
	vertices = append(vertices, ids...)
	edges := make([]int, 0, len(pat.E))
	for i := range pat.E {
		e := &pat.E[i]
		heidx, _ := host.EdgeBetween(ids[e.Src], ids[e.Targ])
		edges = append(edges, heidx)
	}
	sort.Ints(vertices)
	sort.Ints(edges)
	label := make([]byte, 4*(2+len(vertices)+len(edges)))
	binary.BigEndian.PutUint32(label[0:4], uint32(len(vertices)))
	binary.BigEndian.PutUint32(label[4:8], uint32(len(edges)))
	off := 8
	for _, x := range append(vertices, edges...) {
		binary.BigEndian.PutUint32(label[off:off+4], uint32(x))
		off += 4
	}
	return label
}
