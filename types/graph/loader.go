package graph

import (
	"bufio"
	"io"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

type Input func() (reader io.Reader, closer func())

type Loader interface {
	Load(input Input) ([]*Graph, error)
}

type ErrorList []error

func (self ErrorList) Error() string {
	var s []string
	for _, err := range self {
		s = append(s, err.Error())
	}
	return "Errors [" + strings.Join(s, ", ") + "]"
}

// baseLoader accumulates the records of one input. Record errors are
// collected so a load reports every bad record, but once any error is seen
// no graphs are returned.
type baseLoader struct {
	graphs  []*Graph
	cur     *Builder
	errs    ErrorList
	bad     bool
	records int
}

func newBaseLoader() *baseLoader {
	return &baseLoader{
		graphs: make([]*Graph, 0, 100),
	}
}

func (l *baseLoader) startGraph(id int) {
	l.endGraph()
	l.cur = Build(id, 32, 32)
	l.bad = false
	l.records++
}

func (l *baseLoader) endGraph() {
	if l.cur != nil && !l.bad {
		l.graphs = append(l.graphs, l.cur.Build())
	}
	l.cur = nil
}

func (l *baseLoader) builder() *Builder {
	if l.cur == nil {
		l.startGraph(l.records)
	}
	return l.cur
}

func (l *baseLoader) addVertex(id int, label string) {
	if _, err := l.builder().AddVertex(id, label); err != nil {
		l.error(err)
	}
}

func (l *baseLoader) addEdge(src, targ int, label string) {
	if _, err := l.builder().AddEdge(src, targ, label); err != nil {
		l.error(err)
	}
}

func (l *baseLoader) error(err error) {
	l.errs = append(l.errs, err)
	l.bad = true
}

func (l *baseLoader) finish() ([]*Graph, error) {
	l.endGraph()
	if len(l.errs) > 0 {
		return nil, l.errs
	}
	errors.Logf("DEBUG", "loaded %v graphs", len(l.graphs))
	return l.graphs, nil
}

func processLines(in io.Reader, process func([]byte)) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		unsafe := scanner.Bytes()
		line := make([]byte, len(unsafe))
		copy(line, unsafe)
		process(line)
	}
	return scanner.Err()
}

// LoadAll loads every input with the same loader and concatenates the
// results in input order.
func LoadAll(loader Loader, inputs ...Input) ([]*Graph, error) {
	graphs := make([]*Graph, 0, 100)
	for _, input := range inputs {
		gs, err := loader.Load(input)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, gs...)
	}
	return graphs, nil
}
