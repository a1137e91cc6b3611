package mine

import (
	"github.com/tidwall/btree"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gidx/feature"
	"github.com/timtadh/gidx/types/graph"
)

type EmptyCorpus struct{}

func (e *EmptyCorpus) Error() string {
	return "cannot mine features from an empty corpus"
}

type ranked struct {
	support int
	label   string
	f       feature.Feature
}

func rarer(a, b ranked) bool {
	if a.support != b.support {
		return a.support < b.support
	}
	return a.label < b.label
}

// Mine selects the feature set of corpus. The returned Support holds the
// counts of every feature seen, selected or not.
func Mine(corpus []*graph.Graph, opts Options, workers int) (feature.Set, *Support, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	if len(corpus) == 0 {
		return nil, nil, &EmptyCorpus{}
	}
	support := Count(corpus, workers)
	set := Select(support, opts)
	errors.Logf("INFO", "mined %v features (%v edges, %v paths) from %v candidates over %v graphs",
		len(set), set.Count(feature.EdgeKind), set.Count(feature.Path2Kind),
		support.Len(), support.Graphs())
	return set, support, nil
}

// Select applies the support window and the quotas to a counted corpus.
// Features are ranked rarest first, ties broken by label. The set lists
// the selected paths followed by the selected edges.
func Select(support *Support, opts Options) feature.Set {
	maxSupport := opts.MaxSupport(support.Graphs())
	edges := btree.NewBTreeG[ranked](rarer)
	paths := btree.NewBTreeG[ranked](rarer)
	support.Each(func(f feature.Feature, c int) {
		if c < opts.MinSupport {
			return
		}
		r := ranked{support: c, label: f.Label(), f: f}
		switch f.(type) {
		case feature.Edge:
			edges.Set(r)
		case feature.Path2:
			if c <= maxSupport {
				paths.Set(r)
			}
		}
	})
	set := make(feature.Set, 0, opts.MaxFeatures)
	take := func(pool *btree.BTreeG[ranked], max int) {
		taken := 0
		pool.Scan(func(r ranked) bool {
			if taken >= max {
				return false
			}
			set = append(set, r.f)
			taken++
			return true
		})
	}
	take(paths, opts.pathCap())
	take(edges, opts.edgeCap())
	errors.Logf("DEBUG", "admitted %v paths and %v edges (max path support %v)",
		paths.Len(), edges.Len(), maxSupport)
	return set
}
