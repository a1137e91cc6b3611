package feature

import (
	"github.com/timtadh/gidx/types/graph"
)

// EdgeFeatures lists the edge feature of every edge of g, in edge order.
func EdgeFeatures(g *graph.Graph) []Edge {
	edges := make([]Edge, 0, len(g.E))
	for i := range g.E {
		e := &g.E[i]
		edges = append(edges, NewEdge(g.V[e.Src].Label, e.Label, g.V[e.Targ].Label))
	}
	return edges
}

// EdgeCounts is the number of occurrences of each edge feature in g.
func EdgeCounts(g *graph.Graph) map[Edge]int {
	counts := make(map[Edge]int)
	for _, f := range EdgeFeatures(g) {
		counts[f]++
	}
	return counts
}

// Path2Features lists each distinct path2 feature of g once. Every
// unordered pair of distinct neighbors of every vertex is a path.
func Path2Features(g *graph.Graph) []Path2 {
	seen := make(map[Path2]bool)
	paths := make([]Path2, 0, len(g.E))
	for v := range g.V {
		adj := g.Adj[v]
		for i := 0; i < len(adj); i++ {
			for j := i + 1; j < len(adj); j++ {
				a := &g.E[adj[i]]
				b := &g.E[adj[j]]
				f := NewPath2(
					g.V[g.Other(adj[i], v)].Label, a.Label,
					g.V[v].Label,
					b.Label, g.V[g.Other(adj[j], v)].Label,
				)
				if !seen[f] {
					seen[f] = true
					paths = append(paths, f)
				}
			}
		}
	}
	return paths
}
