package graph

import (
	"io/ioutil"
	"strings"
)

import (
	"github.com/timtadh/combos"
	"github.com/timtadh/dot"
)

// DotLoader reads every top level graph in a DOT file as one record. A
// node is labeled by its label attribute (its name when absent) and an
// edge by its label attribute (empty when absent). Subgraph bodies are
// skipped.
type DotLoader struct{}

func NewDotLoader() *DotLoader {
	return &DotLoader{}
}

func (d *DotLoader) Load(input Input) ([]*Graph, error) {
	r, closer := input()
	text, err := ioutil.ReadAll(r)
	closer()
	if err != nil {
		return nil, err
	}
	dp := &dotParse{
		b: newBaseLoader(),
	}
	err = dot.StreamParse(text, dp)
	if err != nil {
		return nil, err
	}
	return dp.b.finish()
}

type dotParse struct {
	b        *baseLoader
	subgraph int
	nextId   int
	vids     map[string]int
}

func (p *dotParse) Enter(name string, n *combos.Node) error {
	if name == "SubGraph" {
		p.subgraph += 1
		return nil
	}
	p.b.startGraph(p.b.records)
	p.nextId = 0
	p.vids = make(map[string]int)
	return nil
}

func (p *dotParse) Stmt(n *combos.Node) error {
	if p.subgraph > 0 {
		return nil
	}
	switch n.Label {
	case "Node":
		p.loadVertex(n)
	case "Edge":
		p.loadEdge(n)
	}
	return nil
}

func (p *dotParse) Exit(name string) error {
	if name == "SubGraph" {
		p.subgraph--
		return nil
	}
	p.b.endGraph()
	return nil
}

func dotAttrs(n *combos.Node) map[string]string {
	attrs := make(map[string]string)
	for _, attr := range n.Children {
		name := attr.Get(0).Value.(string)
		value := attr.Get(1).Value.(string)
		attrs[name] = strings.Trim(value, "\"")
	}
	return attrs
}

func (p *dotParse) loadVertex(n *combos.Node) {
	sid := n.Get(0).Value.(string)
	if _, has := p.vids[sid]; has {
		// a repeated node statement only restates attributes
		return
	}
	label := strings.Trim(sid, "\"")
	if l, has := dotAttrs(n.Get(1))["label"]; has {
		label = l
	}
	id := p.nextId
	p.nextId++
	p.vids[sid] = id
	p.b.addVertex(id, label)
}

func (p *dotParse) loadEdge(n *combos.Node) {
	getId := func(sid string) int {
		if _, has := p.vids[sid]; !has {
			p.loadVertex(combos.NewNode("Node").
				AddKid(combos.NewValueNode("ID", sid)).
				AddKid(combos.NewNode("Attrs")))
		}
		return p.vids[sid]
	}
	src := getId(n.Get(0).Value.(string))
	targ := getId(n.Get(1).Value.(string))
	label := dotAttrs(n.Get(2))["label"]
	p.b.addEdge(src, targ, label)
}
