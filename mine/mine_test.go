package mine

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"math/rand"
)

import (
	"github.com/timtadh/gidx/feature"
	"github.com/timtadh/gidx/types/graph"
)

func path(t *assert.Assertions, id int, labels ...string) *graph.Graph {
	b, err := graph.Build(id, len(labels), len(labels)).Ctx(func(b *graph.Builder) error {
		for i, l := range labels {
			b.AddVertex(i, l)
		}
		for i := 1; i < len(labels); i++ {
			if _, err := b.AddEdge(i-1, i, "s"); err != nil {
				return err
			}
		}
		return nil
	})
	t.Nil(err)
	return b.Build()
}

// windowed is 50 graphs: ABC paths 3 times, XYZ paths 10 times, DEF paths
// twice and lone vertices.
func windowed(t *assert.Assertions) []*graph.Graph {
	corpus := make([]*graph.Graph, 0, 50)
	add := func(n int, labels ...string) {
		for i := 0; i < n; i++ {
			corpus = append(corpus, path(t, len(corpus), labels...))
		}
	}
	add(3, "A", "B", "C")
	add(10, "X", "Y", "Z")
	add(2, "D", "E", "F")
	add(35, "Q")
	return corpus
}

func TestEmptyCorpus(x *testing.T) {
	t := assert.New(x)
	_, _, err := Mine(nil, DefaultOptions(), 1)
	t.IsType(&EmptyCorpus{}, err)
}

func TestValidate(x *testing.T) {
	t := assert.New(x)
	t.Nil(DefaultOptions().Validate())
	for _, o := range []Options{
		{MaxFeatures: 0, MinSupport: 3, MaxSupportFraction: .08, EdgeQuota: 80},
		{MaxFeatures: 10, MinSupport: 0, MaxSupportFraction: .08, EdgeQuota: 80},
		{MaxFeatures: 10, MinSupport: 3, MaxSupportFraction: 1.5, EdgeQuota: 80},
		{MaxFeatures: 10, MinSupport: 3, MaxSupportFraction: .08, EdgeQuota: -1},
	} {
		t.NotNil(o.Validate())
		_, _, err := Mine(windowed(t), o, 1)
		t.NotNil(err)
	}
}

func TestSupportCountsGraphs(x *testing.T) {
	t := assert.New(x)
	star := path(t, 0, "H", "C", "H")
	s := NewSupport()
	s.Add(star)
	s.Add(path(t, 1, "C", "H"))
	t.Equal(2, s.Of(feature.NewEdge("C", "s", "H")))
	t.Equal(1, s.Of(feature.NewPath2("H", "s", "C", "s", "H")))
	t.Equal(0, s.Of(feature.NewEdge("C", "s", "C")))
	t.Equal(2, s.Len())
	t.Equal(2, s.Graphs())
}

func TestMergeIsOrderFree(x *testing.T) {
	t := assert.New(x)
	corpus := windowed(t)
	one := Count(corpus, 1)
	for _, workers := range []int{2, 3, 7, 64} {
		many := Count(corpus, workers)
		t.Equal(one.Graphs(), many.Graphs())
		t.Equal(one.Len(), many.Len())
		one.Each(func(f feature.Feature, c int) {
			t.Equal(c, many.Of(f))
		})
	}
	a, b := NewSupport(), NewSupport()
	a.Add(corpus[0])
	b.Add(corpus[5])
	ab := NewSupport().Merge(a).Merge(b)
	ba := NewSupport().Merge(b).Merge(a)
	ab.Each(func(f feature.Feature, c int) {
		t.Equal(c, ba.Of(f))
	})
}

func TestWindow(x *testing.T) {
	t := assert.New(x)
	set, support, err := Mine(windowed(t), DefaultOptions(), 2)
	t.Nil(err)
	t.Equal(feature.Set{
		feature.NewPath2("A", "s", "B", "s", "C"),
		feature.NewEdge("A", "s", "B"),
		feature.NewEdge("B", "s", "C"),
		feature.NewEdge("X", "s", "Y"),
		feature.NewEdge("Y", "s", "Z"),
	}, set)
	t.Equal(10, support.Of(feature.NewPath2("X", "s", "Y", "s", "Z")))
	t.Equal(2, support.Of(feature.NewEdge("D", "s", "E")))
}

func TestQuota(x *testing.T) {
	t := assert.New(x)
	opts := DefaultOptions()
	opts.MaxFeatures = 3
	opts.EdgeQuota = 2
	set, _, err := Mine(windowed(t), opts, 1)
	t.Nil(err)
	t.Equal(feature.Set{
		feature.NewPath2("A", "s", "B", "s", "C"),
		feature.NewEdge("A", "s", "B"),
		feature.NewEdge("B", "s", "C"),
	}, set)

	opts.MaxFeatures = 1
	set, _, err = Mine(windowed(t), opts, 1)
	t.Nil(err)
	t.Equal(feature.Set{feature.NewEdge("A", "s", "B")}, set)

	opts.MaxFeatures = 10
	opts.EdgeQuota = 0
	set, _, err = Mine(windowed(t), opts, 1)
	t.Nil(err)
	t.Equal(feature.Set{feature.NewPath2("A", "s", "B", "s", "C")}, set)
}

func TestRandomCorporaRespectBounds(x *testing.T) {
	t := assert.New(x)
	r := rand.New(rand.NewSource(7))
	labels := []string{"C", "N", "O", "S"}
	edges := []string{"s", "d"}
	for trial := 0; trial < 20; trial++ {
		corpus := make([]*graph.Graph, 0, 100)
		for i := 0; i < 40+r.Intn(60); i++ {
			n := 2 + r.Intn(6)
			b := graph.Build(i, n, 2*n)
			for v := 0; v < n; v++ {
				b.AddVertex(v, labels[r.Intn(len(labels))])
			}
			for v := 1; v < n; v++ {
				b.AddEdge(r.Intn(v), v, edges[r.Intn(len(edges))])
			}
			corpus = append(corpus, b.Build())
		}
		opts := Options{
			MaxFeatures:        1 + r.Intn(30),
			MinSupport:         1 + r.Intn(4),
			MaxSupportFraction: r.Float64() * .5,
			EdgeQuota:          r.Intn(10),
		}
		set, support, err := Mine(corpus, opts, 1+r.Intn(4))
		t.Nil(err)
		t.True(len(set) <= opts.MaxFeatures)
		t.True(set.Count(feature.EdgeKind) <= opts.EdgeQuota)
		seen := make(map[feature.Feature]bool)
		for _, f := range set {
			t.False(seen[f])
			seen[f] = true
			s := support.Of(f)
			t.True(s >= opts.MinSupport)
			if f.Kind() == feature.Path2Kind {
				t.True(s <= opts.MaxSupport(len(corpus)))
			}
		}
	}
}
