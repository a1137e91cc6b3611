package modes

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/reporters"
	"github.com/timtadh/gidx/types/graph"
	"github.com/timtadh/gidx/types/graph/subgraph"
)

const corpus = `
t # 0
v 0 C
v 1 C
v 2 O
e 0 1 single
e 1 2 double
t # 1
v 0 C
v 1 O
e 0 1 single
`

const queries = `
t # 0
v 0 C
v 1 O
e 0 1 single
`

func input(text string) graph.Input {
	return func() (io.Reader, func()) {
		return strings.NewReader(text), func() {}
	}
}

func setup(t *assert.Assertions) (*config.Config, []*graph.Graph, func()) {
	dir, err := ioutil.TempDir("", "gidx-modes")
	t.Nil(err)
	conf := config.Default()
	conf.Output = dir
	graphs, err := graph.NewGastonLoader().Load(input(corpus))
	t.Nil(err)
	return conf, graphs, func() { os.RemoveAll(dir) }
}

func read(t *assert.Assertions, path string) string {
	bytes, err := ioutil.ReadFile(path)
	t.Nil(err)
	return string(bytes)
}

func filterTask(conf *config.Config) *Filter {
	return &Filter{
		Config:  conf,
		Oracle:  subgraph.NewMatcher(false),
		Loader:  graph.NewGastonLoader(),
		Queries: []graph.Input{input(queries)},
	}
}

func chain(t *assert.Assertions, conf *config.Config, graphs []*graph.Graph) reporters.Reporter {
	file, err := reporters.NewFile(conf, "candidates.dat")
	t.Nil(err)
	verify, err := reporters.NewVerify(conf, graphs, subgraph.NewMatcher(false), "answers.dat")
	t.Nil(err)
	return &reporters.Chain{Reporters: []reporters.Reporter{reporters.NewLog("DEBUG", ""), file, verify}}
}

func TestMine(x *testing.T) {
	t := assert.New(x)
	conf, graphs, clean := setup(t)
	defer clean()
	conf.MinSupport = 1
	conf.MaxSupportFraction = 1
	task := &Mine{Config: conf}
	t.False(task.Reports())
	t.Nil(task.Run(graphs, nil))
	lines := strings.Split(strings.TrimSpace(read(t, conf.OutputFile("features.txt"))), "\n")
	t.Equal([]string{
		"1\tP2\tC\tsingle\tC\tdouble\tO",
		"1\tE\tC\tdouble\tO",
		"1\tE\tC\tsingle\tC",
		"1\tE\tC\tsingle\tO",
	}, lines)
}

func TestFilterEndToEnd(x *testing.T) {
	t := assert.New(x)
	conf, graphs, clean := setup(t)
	defer clean()
	conf.Metrics = "metrics.prom"
	task := filterTask(conf)
	t.True(task.Reports())
	t.Nil(task.Run(graphs, chain(t, conf, graphs)))
	t.Equal("q # 1\nc # 0 1\n", read(t, conf.OutputFile("candidates.dat")))
	t.Equal("0: 1\n", read(t, conf.OutputFile("answers.dat")))
	t.Contains(read(t, conf.OutputFile("metrics.prom")), "gidx_candidates_total 2")
}

func TestIndexThenFilter(x *testing.T) {
	t := assert.New(x)
	conf, graphs, clean := setup(t)
	defer clean()
	conf.MinSupport = 1
	conf.MaxSupportFraction = 1
	build := &Index{Config: conf, Oracle: subgraph.NewMatcher(false)}
	t.Nil(build.Run(graphs, nil))
	for _, name := range []string{"features.bptree", "vectors.bptree", "config.toml"} {
		_, err := os.Stat(conf.OutputFile(name))
		t.Nil(err)
	}

	out, err := ioutil.TempDir("", "gidx-modes-filter")
	t.Nil(err)
	defer os.RemoveAll(out)
	fconf := config.Default()
	t.Nil(fconf.LoadFile(conf.OutputFile("config.toml")))
	fconf.Output = out
	fconf.Index = conf.Output
	t.Nil(filterTask(fconf).Run(graphs, chain(t, fconf, graphs)))
	t.Equal("q # 1\nc # 1\n", read(t, filepath.Join(out, "candidates.dat")))
	t.Equal("0: 1\n", read(t, filepath.Join(out, "answers.dat")))

	t.NotNil(filterTask(fconf).Run(graphs[:1], chain(t, fconf, graphs)))
}
