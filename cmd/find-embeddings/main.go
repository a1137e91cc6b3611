package main

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
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
)

import (
	"github.com/dustin/go-humanize"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/gidx/cmd"
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/feature"
	"github.com/timtadh/gidx/types/graph/subgraph"
)

func init() {
	cmd.UsageMessage = "find-embeddings --help"
	cmd.ExtendedMessage = `
find-embeddings -p <feature> [--induced] <format> <corpus-path>

Log where a feature occurs in each graph of a corpus.

Options
    -h, --help                   view this message
    -p, --pattern=<feature>      a feature label. fields are separated by
                                 tabs or commas.
                                   E,<label>,<edge-label>,<label>
                                   P2,<label>,<edge-label>,<center>,<edge-label>,<label>
    --induced                    use induced subgraph containment
    --cpu-profile=<path>         write a cpu-profile to this location

Examples

    $ find-embeddings -p E,C,double,O gaston ./data/mutagenicity.txt
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hp:",
		[]string{
			"help",
			"pattern=",
			"induced",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	pattern := ""
	induced := false
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-p", "--pattern":
			pattern = oa.Arg()
		case "--induced":
			induced = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if pattern == "" {
		fmt.Fprintf(os.Stderr, "You must supply a pattern (-p)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	f, err := feature.Parse(strings.ReplaceAll(pattern, ",", "\t"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	pat, err := feature.ToPattern(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply a format\n")
		cmd.ListFormats()
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	format, has := cmd.Formats[args[0]]
	if !has {
		fmt.Fprintf(os.Stderr, "Unknown format '%v'\n", args[0])
		cmd.ListFormats()
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	loader, args := format(args[1:], config.Default())
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an input path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	inputPath := cmd.AssertFileOrDirExists(args[0])

	errors.Logf("INFO", "loading %v", inputPath)
	corpus, err := cmd.Load(loader, inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	errors.Logf("INFO", "loaded pattern %v", f)

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	m := subgraph.NewMatcher(induced)
	total := 0
	support := 0
	for _, g := range corpus {
		emb, found := m.Embedded(pat, g)
		if !found {
			continue
		}
		ids := make([]int, 0, len(pat.V))
		for _, idx := range emb.Slice(len(pat.V)) {
			ids = append(ids, g.V[idx].Id)
		}
		count := m.Count(pat, g)
		errors.Logf("INFO", "graph %v embedding %v occurrences %v", g.Id, ids, count)
		support++
		total += count
	}
	errors.Logf("INFO", "support %v of %v graphs, total occurrences %v",
		humanize.Comma(int64(support)), humanize.Comma(int64(len(corpus))), humanize.Comma(int64(total)))
	return 0
}
