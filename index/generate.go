package index

import (
	"github.com/timtadh/gidx/pool"
	"github.com/timtadh/gidx/vector"
)

// Generate returns one candidate set per query, in query order. Corpus
// position d is a candidate of query q when q's metadata fits within d's
// and q's vector is dominated by d's. Both are necessary for containment,
// so every corpus graph containing q is a candidate.
func Generate(qv []vector.Vector, qm []vector.Metadata, dv []vector.Vector, dm []vector.Metadata, workers int) [][]int {
	return generate(qv, qm, dv, dm, workers, nil)
}

func generate(qv []vector.Vector, qm []vector.Metadata, dv []vector.Vector, dm []vector.Metadata, workers int, m *Metrics) [][]int {
	cands := make([][]int, len(qv))
	pool.ForEach(len(qv), workers, func(q int) error {
		cands[q] = filter(qv[q], qm[q], dv, dm, m)
		return nil
	})
	if m != nil {
		m.Queries.Add(float64(len(qv)))
	}
	return cands
}

func filter(qv vector.Vector, qm vector.Metadata, dv []vector.Vector, dm []vector.Metadata, m *Metrics) []int {
	cands := make([]int, 0, 10)
	structural, vectors := 0, 0
	for d := range dv {
		if !qm.Fits(dm[d]) {
			structural++
			continue
		}
		if !qv.DominatedBy(dv[d]) {
			vectors++
			continue
		}
		cands = append(cands, d)
	}
	if m != nil {
		m.StructuralPrunes.Add(float64(structural))
		m.VectorPrunes.Add(float64(vectors))
		m.Candidates.Add(float64(len(cands)))
	}
	return cands
}
