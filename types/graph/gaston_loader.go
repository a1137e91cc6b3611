package graph

import (
	"bytes"
	"strconv"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// GastonLoader reads the line format used by gSpan and gaston:
//
//	# 12          (or "t # 12") starts graph 12
//	v 0 C         vertex 0 labeled C
//	e 0 1 single  edge between vertices 0 and 1 labeled single
//
// Fields may be separated by any whitespace. A "#" line whose first word
// is not a number is a comment.
type GastonLoader struct{}

func NewGastonLoader() *GastonLoader {
	return &GastonLoader{}
}

func (g *GastonLoader) Load(input Input) ([]*Graph, error) {
	b := newBaseLoader()
	in, closer := input()
	defer closer()
	err := processLines(in, func(line []byte) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			return
		}
		lineType, data := gastonParseLine(line)
		switch lineType {
		case "#":
			if gastonComment(data) {
				return
			}
			b.startGraph(gastonGraphId(data, b.records))
		case "t":
			b.startGraph(gastonGraphId(data, b.records))
		case "v":
			if err := g.loadVertex(b, data); err != nil {
				b.error(err)
			}
		case "e":
			if err := g.loadEdge(b, data); err != nil {
				b.error(err)
			}
		default:
			b.error(errors.Errorf("Unknown line type %v", lineType))
		}
	})
	if err != nil {
		return nil, err
	}
	return b.finish()
}

func (g *GastonLoader) loadVertex(b *baseLoader, data []byte) error {
	split := bytes.Fields(data)
	if len(split) < 2 {
		return errors.Errorf("bad vertex line 'v %s'", data)
	}
	id, err := strconv.Atoi(string(split[0]))
	if err != nil {
		return err
	}
	b.addVertex(id, string(bytes.Join(split[1:], []byte(" "))))
	return nil
}

func (g *GastonLoader) loadEdge(b *baseLoader, data []byte) error {
	split := bytes.Fields(data)
	if len(split) < 2 {
		return errors.Errorf("bad edge line 'e %s'", data)
	}
	src, err := strconv.Atoi(string(split[0]))
	if err != nil {
		return err
	}
	targ, err := strconv.Atoi(string(split[1]))
	if err != nil {
		return err
	}
	b.addEdge(src, targ, string(bytes.Join(split[2:], []byte(" "))))
	return nil
}

func gastonParseLine(line []byte) (lineType string, data []byte) {
	if line[0] == '#' {
		return "#", bytes.TrimSpace(line[1:])
	}
	split := bytes.Fields(line)
	return string(split[0]), bytes.TrimSpace(line[len(split[0]):])
}

func gastonComment(data []byte) bool {
	fields := bytes.Fields(data)
	if len(fields) == 0 {
		return false
	}
	_, err := strconv.Atoi(string(fields[0]))
	return err != nil
}

// gastonGraphId reads the id from "12" or "# 12", falling back to the
// record ordinal when the header carries no number.
func gastonGraphId(data []byte, ordinal int) int {
	data = bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(data), []byte("#")))
	fields := bytes.Fields(data)
	if len(fields) == 0 {
		return ordinal
	}
	id, err := strconv.Atoi(string(fields[0]))
	if err != nil {
		return ordinal
	}
	return id
}
