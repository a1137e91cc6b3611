package graph

import (
	"bytes"
	"encoding/json"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// VegLoader reads tab separated JSON lines:
//
//	graph	{"id":3}
//	vertex	{"id":136,"label":"C"}
//	edge	{"src":23,"targ":25,"label":"single"}
//
// Vertices and edges before the first graph line belong to graph 0.
type VegLoader struct{}

func NewVegLoader() *VegLoader {
	return &VegLoader{}
}

func (v *VegLoader) Load(input Input) ([]*Graph, error) {
	b := newBaseLoader()
	in, closer := input()
	defer closer()
	err := processLines(in, func(line []byte) {
		if len(line) == 0 || !bytes.Contains(line, []byte("\t")) {
			return
		}
		lineType, data := parseLine(line)
		var err error
		switch lineType {
		case "graph":
			err = v.loadGraph(b, data)
		case "vertex":
			err = v.loadVertex(b, data)
		case "edge":
			err = v.loadEdge(b, data)
		default:
			err = errors.Errorf("Unknown line type %v", lineType)
		}
		if err != nil {
			b.error(err)
		}
	})
	if err != nil {
		return nil, err
	}
	return b.finish()
}

func (v *VegLoader) loadGraph(b *baseLoader, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	id := b.records
	if _, has := obj["id"]; has {
		id, err = jsonInt(obj, "id")
		if err != nil {
			return err
		}
	}
	b.startGraph(id)
	return nil
}

func (v *VegLoader) loadVertex(b *baseLoader, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	id, err := jsonInt(obj, "id")
	if err != nil {
		return err
	}
	b.addVertex(id, jsonLabel(obj))
	return nil
}

func (v *VegLoader) loadEdge(b *baseLoader, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	src, err := jsonInt(obj, "src")
	if err != nil {
		return err
	}
	targ, err := jsonInt(obj, "targ")
	if err != nil {
		return err
	}
	b.addEdge(src, targ, jsonLabel(obj))
	return nil
}

func parseJson(data []byte) (obj map[string]interface{}, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func jsonInt(obj map[string]interface{}, key string) (int, error) {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0, errors.Errorf("expected a number for %v got %v", key, obj[key])
	}
	i, err := n.Int64()
	if err != nil {
		return 0, err
	}
	return int(i), nil
}

func jsonLabel(obj map[string]interface{}) string {
	switch l := obj["label"].(type) {
	case string:
		return strings.TrimSpace(l)
	case json.Number:
		return l.String()
	default:
		return ""
	}
}

func parseLine(line []byte) (lineType string, data []byte) {
	split := bytes.SplitN(line, []byte("\t"), 2)
	return strings.TrimSpace(string(split[0])), bytes.TrimSpace(split[1])
}
