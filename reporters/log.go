package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

type Log struct {
	level  string
	prefix string
	count  int
}

func NewLog(level, prefix string) *Log {
	if level == "" {
		level = "INFO"
	}
	return &Log{level: level, prefix: prefix}
}

func (lr *Log) Report(q *Query) error {
	lr.count++
	if lr.prefix != "" {
		errors.Logf(lr.level, "%s %v query %v (%v vertices, %v edges) -> %v candidates %v",
			lr.prefix, lr.count, q.Graph.Id, len(q.Graph.V), len(q.Graph.E), len(q.Ids), q.Ids)
	} else {
		errors.Logf(lr.level, "%v query %v (%v vertices, %v edges) -> %v candidates %v",
			lr.count, q.Graph.Id, len(q.Graph.V), len(q.Graph.E), len(q.Ids), q.Ids)
	}
	return nil
}

func (lr *Log) Close() error {
	return nil
}
