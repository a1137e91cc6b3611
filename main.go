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
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/gidx/cmd"
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/modes"
	"github.com/timtadh/gidx/types/graph"
	"github.com/timtadh/gidx/vector"
)

func init() {
	cmd.UsageMessage = "gidx --help"
	cmd.ExtendedMessage = `
gidx - feature index candidate filtering for labeled graph corpora

$ gidx -o <path> [Global Options] \
    <format> [Format Options] <corpus-path> \
    <mode> [Mode Options] \
    [<reporter> [Reporter Options]]

Note: You must supply [Global Options] then [<format> [Format Options]] then
      <corpus-path> then [<mode> [Mode Options]] and finally the reporters.
      Changes in ordering are not supported.

Note: You may either supply the <corpus-path> as a regular file, a gzipped
      file or a directory of such files. If supplying a gzip file the file
      extension must be '.gz'.

Note: If you don't supply a reporter by default it will use 'chain log file'.
      Only the filter mode reports.


Global Options
    -h, --help                   view this message
    --formats                    show the available formats
    --modes                      show the available modes
    --reporters                  show the available reporters
    -o, --output=<path>          path to output directory (required)
                                 NB: will overwrite contents of dir
                                 NB: will overwrite contents of dir
    --config=<path>              read settings from a TOML file. flags given
                                 on the command line take precedence.
    --max-features=<int>         upper bound on selected features (default 700)
    --min-support=<int>          minimum support of a feature (default 3)
    --max-support-fraction=<f>   path features occurring in more than this
                                 fraction of the corpus are dropped
                                 (default .08)
    --edge-quota=<int>           features reserved for edges (default 80)
    -p, --parallelism=<int>      workers to use. 0 is 1, -1 is one per cpu.
    --induced                    use induced subgraph containment
    --metrics=<name>             write prometheus metrics to this file in the
                                 output dir
    --skip-log=<level>           don't output the given log level.
    --log-file=<path>            write the log to a rotating file instead of
                                 stderr

Developer Options
    --cpu-profile=<path>         write a cpu-profile to this location

Config File
    [index]
    max_features = 700
    min_support = 3
    max_support_fraction = 0.08
    edge_quota = 80
    induced = false

    [runtime]
    parallelism = -1
    metrics = "metrics.prom"
    log_file = "/var/log/gidx.log"
    max_log_size = 100 # megabytes
    max_log_age = 7 # days

    A file ending in .yaml or .yml is read as YAML with the same keys.

Formats
    gaston                       the gSpan/gaston text format (default)
    veg                          line delimited json vertices and edges
    dot                          graphviz, one graph per top level graph

    gaston File Format
        t # 0
        v 0 C
        v 1 O
        e 0 1 single

        Note: "# 0" is accepted as a graph header as well. Graph ids are read
              from the header. Node ids must be unique within a graph.

    veg File Format
        graph	{"id":0}
        vertex	{"id":136,"label":"C"}
        edge	{"src":136,"targ":25,"label":"single"}

        Note: the spaces between the line type and {...} are tabs

Modes
    mine                         write the selected features to features.txt
    index                        build the index and save it to the output dir
    filter <queries-path>        write the candidates of every query graph.
                                 the queries use the corpus format.

    filter Options
        -i, index=<path>         use the index saved in this directory rather
                                 than building one. the corpus must be the one
                                 it was built from.

Reporters
    chain                        chain several reporters together (end the
                                 chain with endchain)
    log                          log the candidates of each query
    file                         write candidates to a file in the output dir
    verify                       check each candidate with the subgraph
                                 matcher and write the true answers
    count                        write the number of queries and candidates
    skip                         pass every nth query to an inner reporter

    log Options
        -l, level=<string>       log level the logger should use
        -p, prefix=<string>      a prefix to put before the log line

    file Options
        -f, filename=<name>      (default candidates.dat)

    verify Options
        -f, filename=<name>      (default answers.dat)

    count Options
        -f, filename=<name>      (default count.txt)

    skip Options
        -s, skip=<int>           report every nth query (default 1)

    Examples

        $ gidx -o /tmp/gidx gaston ./data/mutagenicity.txt index

        $ gidx -o /tmp/gidx-q --max-features=400 -p -1 \
            gaston ./data/mutagenicity.txt \
            filter -i /tmp/gidx ./data/queries.txt \
            chain log file verify
`
}

func mineMode(argv []string, conf *config.Config, loader graph.Loader, oracle vector.Oracle) (modes.Task, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return &modes.Mine{Config: conf}, args
}

func indexMode(argv []string, conf *config.Config, loader graph.Loader, oracle vector.Oracle) (modes.Task, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return &modes.Index{Config: conf, Oracle: oracle}, args
}

func filterMode(argv []string, conf *config.Config, loader graph.Loader, oracle vector.Oracle) (modes.Task, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hi:",
		[]string{
			"help",
			"index=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-i", "--index":
			conf.Index = cmd.AssertDir(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply a queries path to filter\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	queries, err := cmd.PathInputs(cmd.AssertFileOrDirExists(args[0]))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["badfile"])
	}
	task := &modes.Filter{
		Config:  conf,
		Oracle:  oracle,
		Loader:  loader,
		Queries: queries,
	}
	return task, args[1:]
}

func main() {
	os.Exit(run())
}

func run() int {
	modes := map[string]cmd.Mode{
		"mine":   mineMode,
		"index":  indexMode,
		"filter": filterMode,
	}

	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:p:",
		[]string{
			"help",
			"output=",
			"config=",
			"formats", "modes", "reporters",
			"max-features=",
			"min-support=",
			"max-support-fraction=",
			"edge-quota=",
			"parallelism=",
			"induced",
			"metrics=",
			"skip-log=",
			"log-file=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments (perhaps you forgot a mode?) try:")
		fmt.Fprintf(os.Stderr, "$ %v %v gaston <corpus> index\n", os.Args[0], strings.Join(os.Args[1:], " "))
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	conf := config.Default()
	for _, oa := range optargs {
		if oa.Opt() == "--config" {
			if err := conf.LoadFile(cmd.AssertFileOrDirExists(oa.Arg())); err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage(cmd.ErrorCodes["badfile"])
			}
		}
	}

	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-o", "--output":
			conf.Output = cmd.EmptyDir(oa.Arg())
		case "--config":
		case "--max-features":
			conf.MaxFeatures = cmd.ParseInt(oa.Arg())
		case "--min-support":
			conf.MinSupport = cmd.ParseInt(oa.Arg())
		case "--max-support-fraction":
			conf.MaxSupportFraction = cmd.ParseFloat(oa.Arg())
		case "--edge-quota":
			conf.EdgeQuota = cmd.ParseInt(oa.Arg())
		case "-p", "--parallelism":
			conf.Parallelism = cmd.ParseInt(oa.Arg())
		case "--induced":
			conf.Induced = true
		case "--metrics":
			conf.Metrics = oa.Arg()
		case "--formats":
			cmd.ListFormats()
			os.Exit(0)
		case "--modes":
			cmd.ListModes(modes)
			os.Exit(0)
		case "--reporters":
			cmd.ListReporters()
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--log-file":
			conf.LogFile = cmd.AssertFile(oa.Arg())
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if err := conf.MineOptions().Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if conf.Parallelism < -1 {
		fmt.Fprintf(os.Stderr, "Parallelism must be >= -1\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if conf.Output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	conf.SetLogger()

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

	return cmd.Main(args, conf, modes)
}
