package cmd

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
	"io"
	"io/ioutil"
	"log"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

import (
	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/modes"
	"github.com/timtadh/gidx/reporters"
	"github.com/timtadh/gidx/types/graph"
	"github.com/timtadh/gidx/types/graph/subgraph"
	"github.com/timtadh/gidx/vector"
)

var ErrorCodes map[string]int = map[string]int{
	"usage":    0,
	"version":  2,
	"opts":     3,
	"badfloat": 4,
	"badint":   5,
	"baddir":   6,
	"badfile":  7,
}

var UsageMessage string
var ExtendedMessage string

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

func InputFile(input_path string) (reader io.Reader, closeall func()) {
	freader, err := os.Open(input_path)
	if err != nil {
		panic(err)
	}
	if strings.HasSuffix(input_path, ".gz") {
		greader, err := gzip.NewReader(freader)
		if err != nil {
			panic(err)
		}
		return greader, func() {
			greader.Close()
			freader.Close()
		}
	}
	return freader, func() {
		freader.Close()
	}
}

func ParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

func ParseFloat(str string) float64 {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a float\n", str)
		Usage(ErrorCodes["badfloat"])
	}
	return f
}

func AssertDir(dir string) string {
	dir = path.Clean(dir)
	fi, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Directory '%s' does not exist!\n", dir)
		Usage(ErrorCodes["baddir"])
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["baddir"])
	} else if !fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was not a directory, %s\n", dir)
		Usage(ErrorCodes["baddir"])
	}
	return dir
}

func EmptyDir(dir string) string {
	dir = path.Clean(dir)
	_, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0775)
		if err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	} else {
		// something already exists lets delete it
		err := os.RemoveAll(dir)
		if err != nil {
			log.Fatal(err)
		}
		err = os.MkdirAll(dir, 0775)
		if err != nil {
			log.Fatal(err)
		}
	}
	return dir
}

func AssertFileOrDirExists(fname string) string {
	fname = path.Clean(fname)
	_, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "File '%s' does not exist!\n", fname)
		Usage(ErrorCodes["badfile"])
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

func AssertFile(fname string) string {
	fname = path.Clean(fname)
	fi, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		return fname
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["badfile"])
	} else if fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was a directory, %s\n", fname)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

// PathInputs lists the inputs of a path: the file itself (gzipped when
// it ends in .gz) or every regular file of a directory in name order.
func PathInputs(inputPath string) ([]graph.Input, error) {
	stat, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	paths := []string{inputPath}
	if stat.IsDir() {
		dir, err := ioutil.ReadDir(inputPath)
		if err != nil {
			return nil, err
		}
		paths = paths[:0]
		for _, info := range dir {
			if info.Mode().IsRegular() {
				paths = append(paths, path.Join(inputPath, info.Name()))
			}
		}
	}
	inputs := make([]graph.Input, 0, len(paths))
	for _, p := range paths {
		p := p
		inputs = append(inputs, func() (io.Reader, func()) {
			return InputFile(p)
		})
	}
	return inputs, nil
}

// Load reads every input of a path with the loader. Each file of a
// directory is loaded on its own.
func Load(loader graph.Loader, inputPath string) ([]*graph.Graph, error) {
	inputs, err := PathInputs(inputPath)
	if err != nil {
		return nil, err
	}
	return graph.LoadAll(loader, inputs...)
}

func listKeys(title string, keys []string) {
	sort.Strings(keys)
	fmt.Fprintln(os.Stderr, title)
	for _, k := range keys {
		fmt.Fprintln(os.Stderr, "  ", k)
	}
}

func noOpts(argv []string) []string {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return args
}

type Format func([]string, *config.Config) (graph.Loader, []string)

func gastonFormat(argv []string, conf *config.Config) (graph.Loader, []string) {
	return graph.NewGastonLoader(), noOpts(argv)
}

func vegFormat(argv []string, conf *config.Config) (graph.Loader, []string) {
	return graph.NewVegLoader(), noOpts(argv)
}

func dotFormat(argv []string, conf *config.Config) (graph.Loader, []string) {
	return graph.NewDotLoader(), noOpts(argv)
}

// Env is what reporters may need from a run besides the configuration.
type Env struct {
	Corpus []*graph.Graph
	Oracle vector.Oracle
}

type Reporter func(map[string]Reporter, []string, *Env, *config.Config) (reporters.Reporter, []string)

func logReporter(rptrs map[string]Reporter, argv []string, env *Env, conf *config.Config) (reporters.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hl:p:",
		[]string{
			"help",
			"level=",
			"prefix=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	level := "INFO"
	prefix := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-l", "--level":
			level = oa.Arg()
		case "-p", "--prefix":
			prefix = oa.Arg()
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return reporters.NewLog(level, prefix), args
}

func filename(argv []string, def string) (string, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hf:",
		[]string{
			"help",
			"filename=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	name := def
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-f", "--filename":
			name = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return name, args
}

func fileReporter(rptrs map[string]Reporter, argv []string, env *Env, conf *config.Config) (reporters.Reporter, []string) {
	name, args := filename(argv, "candidates.dat")
	fr, err := reporters.NewFile(conf, name)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files\n")
		errors.Logf("ERROR", "%v\n", err)
		os.Exit(1)
	}
	return fr, args
}

func verifyReporter(rptrs map[string]Reporter, argv []string, env *Env, conf *config.Config) (reporters.Reporter, []string) {
	name, args := filename(argv, "answers.dat")
	vr, err := reporters.NewVerify(conf, env.Corpus, env.Oracle, name)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files\n")
		errors.Logf("ERROR", "%v\n", err)
		os.Exit(1)
	}
	return vr, args
}

func countReporter(rptrs map[string]Reporter, argv []string, env *Env, conf *config.Config) (reporters.Reporter, []string) {
	name, args := filename(argv, "count.txt")
	cr, err := reporters.NewCount(conf, name)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files\n")
		errors.Logf("ERROR", "%v\n", err)
		os.Exit(1)
	}
	return cr, args
}

func inner(reports map[string]Reporter, args []string, env *Env, conf *config.Config, name string) (reporters.Reporter, []string) {
	var rptr reporters.Reporter
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "You must supply an inner reporter to %v\n", name)
		fmt.Fprintf(os.Stderr, "try: %v file\n", name)
		Usage(ErrorCodes["opts"])
	} else if _, has := reports[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown reporter '%v'\n", args[0])
		listKeys("Reporters:", keys(reports))
		Usage(ErrorCodes["opts"])
	} else {
		rptr, args = reports[args[0]](reports, args[1:], env, conf)
	}
	return rptr, args
}

func skipReporter(reports map[string]Reporter, argv []string, env *Env, conf *config.Config) (reporters.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hs:",
		[]string{
			"help",
			"skip=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	skip := 1
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-s", "--skip":
			skip = ParseInt(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	if skip <= 0 {
		fmt.Fprintf(os.Stderr, "skip must be > 0\n")
		Usage(ErrorCodes["opts"])
	}
	rptr, args := inner(reports, args, env, conf, "skip")
	return reporters.NewSkip(skip, rptr), args
}

func chainReporter(reports map[string]Reporter, argv []string, env *Env, conf *config.Config) (reporters.Reporter, []string) {
	args := noOpts(argv)
	rptrs := make([]reporters.Reporter, 0, 10)
	for len(args) >= 1 {
		if args[0] == "endchain" {
			args = args[1:]
			break
		}
		if _, has := reports[args[0]]; !has {
			errors.Logf("ERROR", "Unknown reporter '%v'\n", args[0])
			listKeys("Reporters:", keys(reports))
			Usage(ErrorCodes["opts"])
		}
		var rptr reporters.Reporter
		rptr, args = reports[args[0]](reports, args[1:], env, conf)
		rptrs = append(rptrs, rptr)
	}
	if len(rptrs) == 0 {
		errors.Logf("ERROR", "Empty chain")
		fmt.Fprintln(os.Stderr, "try: chain log file")
		Usage(ErrorCodes["opts"])
	}
	return &reporters.Chain{Reporters: rptrs}, args
}

var Formats map[string]Format = map[string]Format{
	"gaston": gastonFormat,
	"veg":    vegFormat,
	"dot":    dotFormat,
}

var Reporters map[string]Reporter = map[string]Reporter{
	"log":    logReporter,
	"file":   fileReporter,
	"verify": verifyReporter,
	"count":  countReporter,
	"skip":   skipReporter,
	"chain":  chainReporter,
}

func keys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}

func FormatNames() []string   { return keys(Formats) }
func ReporterNames() []string { return keys(Reporters) }

func ListFormats()   { listKeys("Formats:", FormatNames()) }
func ListReporters() { listKeys("Reporters:", ReporterNames()) }

type Mode func(argv []string, conf *config.Config, loader graph.Loader, oracle vector.Oracle) (modes.Task, []string)

func ListModes(modes map[string]Mode) {
	listKeys("Modes:", keys(modes))
}

func Main(args []string, conf *config.Config, modes map[string]Mode) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply a format and a mode\n")
		Usage(ErrorCodes["opts"])
	} else if _, has := Formats[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown corpus format '%v'\n", args[0])
		ListFormats()
		Usage(ErrorCodes["opts"])
	}
	loader, args := Formats[args[0]](args[1:], conf)
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly a corpus path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		Usage(ErrorCodes["opts"])
	}
	corpusPath := AssertFileOrDirExists(args[0])
	args = args[1:]
	oracle := subgraph.NewMatcher(conf.Induced)

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply a mode\n")
		Usage(ErrorCodes["opts"])
	} else if _, has := modes[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown mode '%v'\n", args[0])
		ListModes(modes)
		Usage(ErrorCodes["opts"])
	}
	task, args := modes[args[0]](args[1:], conf, loader, oracle)

	errors.Logf("INFO", "Got configuration about to load corpus")
	corpus, err := Load(loader, corpusPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	errors.Logf("INFO", "loaded %v graphs", humanize.Comma(int64(len(corpus))))

	var rptr reporters.Reporter
	if task.Reports() {
		env := &Env{Corpus: corpus, Oracle: oracle}
		if len(args) == 0 {
			rptr, _ = Reporters["chain"](Reporters, []string{"log", "file"}, env, conf)
		} else if _, has := Reporters[args[0]]; !has {
			fmt.Fprintf(os.Stderr, "Unknown reporter '%v'\n", args[0])
			ListReporters()
			Usage(ErrorCodes["opts"])
		} else {
			rptr, args = Reporters[args[0]](Reporters, args[1:], env, conf)
		}
	}
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "unconsumed commandline options: '%v'\n", strings.Join(args, " "))
		Usage(ErrorCodes["opts"])
	}

	errors.Logf("INFO", "loaded corpus, about to run")
	if err := task.Run(corpus, rptr); err != nil {
		fmt.Fprintf(os.Stderr, "There was error while running\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	errors.Logf("INFO", "Done!")
	return 0
}
