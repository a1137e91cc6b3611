package modes

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"bufio"
	"fmt"
	"os"
)

import (
	"github.com/dustin/go-humanize"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/index"
	"github.com/timtadh/gidx/mine"
	"github.com/timtadh/gidx/reporters"
	"github.com/timtadh/gidx/types/graph"
	"github.com/timtadh/gidx/vector"
)

// Task is one run of the tool over a loaded corpus. Tasks which do not
// produce queries ignore the reporter.
type Task interface {
	Run(corpus []*graph.Graph, rptr reporters.Reporter) error
	Reports() bool
}

// Mine writes the selected features, with their support, to features.txt.
type Mine struct {
	Config *config.Config
}

func (m *Mine) Reports() bool { return false }

func (m *Mine) Run(corpus []*graph.Graph, _ reporters.Reporter) error {
	set, support, err := mine.Mine(corpus, m.Config.MineOptions(), m.Config.Workers())
	if err != nil {
		return err
	}
	fout, err := os.Create(m.Config.OutputFile("features.txt"))
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fout)
	for _, f := range set {
		fmt.Fprintf(w, "%d\t%s\n", support.Of(f), f.Label())
	}
	if err := w.Flush(); err != nil {
		fout.Close()
		return err
	}
	return fout.Close()
}

// Index builds the index of the corpus and saves it to the output
// directory along with the settings used.
type Index struct {
	Config *config.Config
	Oracle vector.Oracle
}

func (m *Index) Reports() bool { return false }

func (m *Index) Run(corpus []*graph.Graph, _ reporters.Reporter) error {
	idx, err := index.Build(corpus, m.Config, m.Oracle)
	if err != nil {
		return err
	}
	if err := idx.Save(m.Config); err != nil {
		return err
	}
	return writeMetrics(m.Config, idx)
}

// Filter reports the candidates of every query graph. The index is built
// from the corpus unless Config.Index names a saved one.
type Filter struct {
	Config  *config.Config
	Oracle  vector.Oracle
	Loader  graph.Loader
	Queries []graph.Input
}

func (m *Filter) Reports() bool { return true }

func (m *Filter) Run(corpus []*graph.Graph, rptr reporters.Reporter) (err error) {
	defer func() {
		if e := rptr.Close(); err == nil {
			err = e
		}
	}()
	queries, err := graph.LoadAll(m.Loader, m.Queries...)
	if err != nil {
		return err
	}
	var idx *index.Index
	if m.Config.Index != "" {
		idx, err = index.Open(m.Config, m.Oracle)
	} else {
		idx, err = index.Build(corpus, m.Config, m.Oracle)
	}
	if err != nil {
		return err
	}
	if idx.Len() != len(corpus) {
		return errors.Errorf("index holds %v graphs but the corpus has %v", idx.Len(), len(corpus))
	}
	errors.Logf("INFO", "filtering %v queries against %v graphs",
		humanize.Comma(int64(len(queries))), humanize.Comma(int64(idx.Len())))
	cands := idx.Candidates(queries)
	for i, q := range queries {
		err := rptr.Report(&reporters.Query{
			Idx:       i,
			Graph:     q,
			Positions: cands[i],
			Ids:       idx.GraphIds(cands[i]),
		})
		if err != nil {
			return err
		}
	}
	return writeMetrics(m.Config, idx)
}

func writeMetrics(conf *config.Config, idx *index.Index) error {
	if conf.Metrics == "" {
		return nil
	}
	return idx.Metrics.WriteFile(conf.OutputFile(conf.Metrics))
}
