package reporters

import (
	"bufio"
	"fmt"
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
	"gonum.org/v1/gonum/stat"
)

import (
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/types/graph"
	"github.com/timtadh/gidx/vector"
)

// Verify runs the oracle against every candidate of a query and writes the
// true answers as "<query>: <id>,<id>,..." lines, queries counted from 0.
// Closing logs the mean ratio of answers to candidates, a query with no
// candidates scoring 0.
type Verify struct {
	config *config.Config
	corpus []*graph.Graph
	oracle vector.Oracle
	fout   *os.File
	w      *bufio.Writer
	scores []float64
}

func NewVerify(c *config.Config, corpus []*graph.Graph, oracle vector.Oracle, filename string) (*Verify, error) {
	fout, err := os.Create(c.OutputFile(filename))
	if err != nil {
		return nil, err
	}
	r := &Verify{
		config: c,
		corpus: corpus,
		oracle: oracle,
		fout:   fout,
		w:      bufio.NewWriter(fout),
	}
	return r, nil
}

// Answers keeps the candidate ids whose corpus graph contains the query.
func (r *Verify) Answers(q *Query) []int {
	answers := make([]int, 0, len(q.Positions))
	for i, pos := range q.Positions {
		if r.oracle.Contains(q.Graph, r.corpus[pos]) {
			answers = append(answers, q.Ids[i])
		}
	}
	return answers
}

func (r *Verify) Report(q *Query) error {
	answers := r.Answers(q)
	score := 0.0
	if len(q.Positions) > 0 {
		score = float64(len(answers)) / float64(len(q.Positions))
	}
	r.scores = append(r.scores, score)
	_, err := fmt.Fprintf(r.w, "%d: %s\n", q.Idx, joinInts(answers, ","))
	return err
}

// Score is the mean answer to candidate ratio so far.
func (r *Verify) Score() float64 {
	if len(r.scores) == 0 {
		return 0
	}
	return stat.Mean(r.scores, nil)
}

func (r *Verify) Close() error {
	if len(r.scores) > 0 {
		errors.Logf("INFO", "verified %v queries, mean precision %.4f (std dev %.4f)",
			len(r.scores), r.Score(), stat.StdDev(r.scores, nil))
	}
	err := r.w.Flush()
	if err != nil {
		r.fout.Close()
		return err
	}
	return r.fout.Close()
}
