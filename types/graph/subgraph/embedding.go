package subgraph

import (
	"fmt"
	"strings"
)

// Embedding is a partial mapping of pattern vertices onto host vertices,
// stored as a chain so extensions share their prefix.
type Embedding struct {
	VertexEmbedding
	Depth int
	Prev  *Embedding
}

type VertexEmbedding struct {
	SgIdx, EmbIdx int
}

func StartEmbedding(v VertexEmbedding) *Embedding {
	return &Embedding{VertexEmbedding: v, Depth: 1, Prev: nil}
}

func (emb *Embedding) Extend(v VertexEmbedding) *Embedding {
	return &Embedding{VertexEmbedding: v, Depth: emb.Depth + 1, Prev: emb}
}

// Slice maps every pattern vertex index to its host vertex index, -1 when
// the vertex is not mapped yet.
func (emb *Embedding) Slice(patternSize int) []int {
	ids := make([]int, patternSize)
	for i := range ids {
		ids[i] = -1
	}
	for e := emb; e != nil; e = e.Prev {
		ids[e.SgIdx] = e.EmbIdx
	}
	return ids
}

func (emb *Embedding) String() string {
	items := make([]string, 0, 10)
	for e := emb; e != nil; e = e.Prev {
		items = append(items, fmt.Sprintf("<sg-idx: %v, emb-idx: %v>", e.SgIdx, e.EmbIdx))
	}
	return fmt.Sprintf("(%v)", strings.Join(items, ", "))
}
