package index

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/prometheus/client_golang/prometheus/testutil"
)

import (
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/types/graph"
	"github.com/timtadh/gidx/types/graph/subgraph"
	"github.com/timtadh/gidx/vector"
)

func load(t *assert.Assertions, text string) []*graph.Graph {
	graphs, err := graph.NewGastonLoader().Load(func() (io.Reader, func()) {
		return strings.NewReader(text), func() {}
	})
	t.Nil(err)
	return graphs
}

const corpus = `
# 0
v 0 C
v 1 C
v 2 O
e 0 1 single
e 1 2 double
# 1
v 0 C
v 1 O
e 0 1 single
`

const query = `
# 0
v 0 C
v 1 O
e 0 1 single
`

func TestGenerateEdgeCases(x *testing.T) {
	t := assert.New(x)
	dv := []vector.Vector{{1, 0}, {0, 2}, {3, 3}}
	dm := []vector.Metadata{{3, 2, 2}, {2, 1, 1}, {5, 4, 3}}
	qv := []vector.Vector{{0, 0}, {0, 0}, {1, 1}, {0, 0}}
	qm := []vector.Metadata{{0, 0, 0}, {9, 9, 9}, {2, 1, 1}, {3, 1, 1}}
	for _, workers := range []int{1, 3} {
		cands := Generate(qv, qm, dv, dm, workers)
		t.Equal([][]int{{0, 1, 2}, {}, {2}, {0, 2}}, cands)
	}
	t.Equal(0, len(Generate(nil, nil, dv, dm, 2)))
	t.Equal([][]int{{}}, Generate([]vector.Vector{{}}, []vector.Metadata{{}}, nil, nil, 1))
}

func TestEndToEnd(x *testing.T) {
	t := assert.New(x)
	graphs := load(t, corpus)
	queries := load(t, query)
	oracle := subgraph.NewMatcher(false)

	idx, err := Build(graphs, config.Default(), oracle)
	t.Nil(err)
	t.Equal(0, len(idx.Features))
	cands := idx.Candidates(queries)
	t.Equal([][]int{{0, 1}}, cands)

	answers := make([]int, 0, 1)
	for _, d := range cands[0] {
		if oracle.Contains(queries[0], graphs[d]) {
			answers = append(answers, d)
		}
	}
	t.Equal([]int{1}, answers)
	t.Equal([]int{1}, idx.GraphIds(answers))
}

func TestEndToEndWithFeatures(x *testing.T) {
	t := assert.New(x)
	conf := config.Default()
	conf.MinSupport = 1
	conf.MaxSupportFraction = 1
	idx, err := Build(load(t, corpus), conf, subgraph.NewMatcher(false))
	t.Nil(err)
	t.Equal(4, len(idx.Features))
	t.Equal([][]int{{1}}, idx.Candidates(load(t, query)))
	t.Equal(float64(1), testutil.ToFloat64(idx.Metrics.VectorPrunes))
	t.Equal(float64(0), testutil.ToFloat64(idx.Metrics.StructuralPrunes))
	t.Equal(float64(1), testutil.ToFloat64(idx.Metrics.Candidates))
	t.Equal(float64(2), testutil.ToFloat64(idx.Metrics.Indexed))
	t.True(testutil.ToFloat64(idx.Metrics.Bytes) > 0)
}

func TestEmptyCorpus(x *testing.T) {
	t := assert.New(x)
	_, err := Build(nil, config.Default(), subgraph.NewMatcher(false))
	t.NotNil(err)
}

// randomGraph is a random connected graph over a small label alphabet.
func randomGraph(r *rand.Rand, id int) *graph.Graph {
	labels := []string{"C", "C", "N", "O"}
	edges := []string{"s", "d"}
	n := 2 + r.Intn(7)
	b := graph.Build(id, n, 2*n)
	for v := 0; v < n; v++ {
		b.AddVertex(v, labels[r.Intn(len(labels))])
	}
	for v := 1; v < n; v++ {
		b.AddEdge(r.Intn(v), v, edges[r.Intn(len(edges))])
	}
	for i := 0; i < r.Intn(n); i++ {
		u, v := r.Intn(n), r.Intn(n)
		if u != v {
			b.AddEdge(u, v, edges[r.Intn(len(edges))])
		}
	}
	return b.Build()
}

// sample grows a connected subgraph of g from a random vertex, keeping a
// random subset of the edges it walks over.
func sample(r *rand.Rand, g *graph.Graph, id int) *graph.Graph {
	start := r.Intn(len(g.V))
	b := graph.Build(id, len(g.V), len(g.E))
	b.AddVertex(g.V[start].Id, g.V[start].Label)
	added := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, eidx := range g.Adj[u] {
			v := g.Other(eidx, u)
			if r.Intn(3) == 0 {
				continue
			}
			if !added[v] {
				added[v] = true
				b.AddVertex(g.V[v].Id, g.V[v].Label)
				queue = append(queue, v)
			}
			b.AddEdge(g.V[u].Id, g.V[v].Id, g.E[eidx].Label)
		}
	}
	return b.Build()
}

func TestPruningIsSound(x *testing.T) {
	t := assert.New(x)
	r := rand.New(rand.NewSource(11))
	graphs := make([]*graph.Graph, 0, 60)
	for i := 0; i < 60; i++ {
		graphs = append(graphs, randomGraph(r, i))
	}
	queries := make([]*graph.Graph, 0, 40)
	for i := 0; i < 40; i++ {
		queries = append(queries, sample(r, graphs[r.Intn(len(graphs))], i))
	}
	for _, induced := range []bool{false, true} {
		oracle := subgraph.NewMatcher(induced)
		conf := config.Default()
		conf.MinSupport = 2
		conf.MaxSupportFraction = .5
		conf.MaxFeatures = 40
		conf.EdgeQuota = 10
		conf.Parallelism = 4
		conf.Induced = induced
		idx, err := Build(graphs, conf, oracle)
		t.Nil(err)
		t.True(len(idx.Features) > 0)
		cands := idx.Candidates(queries)
		pruned := 0
		for q := range queries {
			in := make(map[int]bool)
			for _, d := range cands[q] {
				in[d] = true
			}
			pruned += len(graphs) - len(cands[q])
			for d := range graphs {
				if oracle.Contains(queries[q], graphs[d]) {
					t.True(in[d], "query %v is contained in corpus graph %v but was pruned", q, d)
				}
			}
		}
		t.True(pruned > 0)
	}
}

func TestSaveOpen(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "gidx-index")
	t.Nil(err)
	defer os.RemoveAll(dir)
	r := rand.New(rand.NewSource(3))
	graphs := make([]*graph.Graph, 0, 30)
	for i := 0; i < 30; i++ {
		graphs = append(graphs, randomGraph(r, 100+i))
	}
	conf := config.Default()
	conf.Output = dir
	conf.MinSupport = 2
	conf.MaxSupportFraction = .5
	oracle := subgraph.NewMatcher(false)
	idx, err := Build(graphs, conf, oracle)
	t.Nil(err)
	t.Nil(idx.Save(conf))

	other := config.Default()
	other.Index = dir
	opened, err := Open(other, oracle)
	t.Nil(err)
	t.Equal(idx.Features, opened.Features)
	t.Equal(idx.Vectors, opened.Vectors)
	t.Equal(idx.Meta, opened.Meta)
	t.Equal(idx.Ids, opened.Ids)

	queries := []*graph.Graph{sample(r, graphs[0], 0), sample(r, graphs[7], 1)}
	t.Equal(idx.Candidates(queries), opened.Candidates(queries))

	_, err = Open(config.Default(), oracle)
	t.NotNil(err)
}

const triangles = `
# 0
v 0 C
v 1 C
v 2 C
e 0 1 s
e 1 2 s
e 2 0 s
# 1
v 0 C
v 1 C
v 2 C
e 0 1 s
e 1 2 s
`

func TestOpenChecksInduced(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "gidx-index")
	t.Nil(err)
	defer os.RemoveAll(dir)
	graphs := load(t, triangles)
	conf := config.Default()
	conf.Output = dir
	conf.MinSupport = 1
	conf.MaxSupportFraction = 1
	conf.Induced = true
	idx, err := Build(graphs, conf, subgraph.NewMatcher(true))
	t.Nil(err)
	t.True(idx.Induced)
	t.Nil(idx.Save(conf))
	_, err = os.Stat(filepath.Join(dir, SettingsFile))
	t.Nil(err)

	other := config.Default()
	other.Index = dir
	_, err = Open(other, subgraph.NewMatcher(false))
	t.NotNil(err)

	other.Induced = true
	opened, err := Open(other, subgraph.NewMatcher(true))
	t.Nil(err)
	t.True(opened.Induced)
	queries := graphs[1:]
	t.Equal(idx.Candidates(queries), opened.Candidates(queries))
	t.Contains(opened.Candidates(queries)[0], 1)
	t.Contains(opened.Candidates(graphs[:1])[0], 0)
}

func TestSaveRemovesPartialTrees(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "gidx-index")
	t.Nil(err)
	defer os.RemoveAll(dir)
	conf := config.Default()
	conf.Output = dir
	conf.MinSupport = 1
	conf.MaxSupportFraction = 1
	idx, err := Build(load(t, corpus), conf, subgraph.NewMatcher(false))
	t.Nil(err)
	t.Nil(os.Mkdir(filepath.Join(dir, VectorsFile), 0755))
	t.NotNil(idx.Save(conf))
	_, err = os.Stat(filepath.Join(dir, FeaturesFile))
	t.True(os.IsNotExist(err))
}

func TestVersion(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "gidx-index")
	t.Nil(err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, VersionFile)
	t.NotNil(checkVersion(path))
	t.Nil(writeVersion(path))
	t.Nil(checkVersion(path))
	t.Nil(ioutil.WriteFile(path, []byte("1.7.2\n"), 0644))
	t.Nil(checkVersion(path))
	t.Nil(ioutil.WriteFile(path, []byte("2.0.0\n"), 0644))
	t.NotNil(checkVersion(path))
	t.Nil(ioutil.WriteFile(path, []byte("one\n"), 0644))
	t.NotNil(checkVersion(path))
}

func TestRowCodec(x *testing.T) {
	t := assert.New(x)
	meta := vector.Metadata{Nodes: 12, Edges: 11, MaxDegree: 4}
	vec := vector.Vector{0, 1, 300, 0, 7}
	row := encodeRow(42, meta, vec)
	id, m, v, err := decodeRow(row, len(vec))
	t.Nil(err)
	t.Equal(42, id)
	t.Equal(meta, m)
	t.Equal(vec, v)
	_, _, _, err = decodeRow(row, 3)
	t.NotNil(err)
	_, _, _, err = decodeRow([]byte("garbage"), 3)
	t.NotNil(err)
}
