package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2016, Tim Henderson, Case Western Reserve University
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
	"io"
	"os"
	"strings"
)

import (
	"github.com/klauspost/compress/gzip"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/gidx/cmd"
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/types/graph"
)

func init() {
	cmd.UsageMessage = "convert --help"
	cmd.ExtendedMessage = `
convert [-o <path>] [-t <format>] <format> <corpus-path>

Re-encode a graph corpus. Any format gidx reads may be written.

Options
    -h, --help                   view this message
    -o, --output=<path>          write here rather than stdout. a path ending
                                 in .gz is gzipped.
    -t, --to=<format>            gaston (default), veg or dot

Examples

    $ convert -t veg -o mutagenicity.veg gaston ./data/mutagenicity.txt
    $ convert dot ./data/graphs.dot > graphs.txt
`
}

var writers = map[string]func(io.Writer, *graph.Graph) error{
	"gaston": graph.FormatGaston,
	"veg":    graph.FormatVeg,
	"dot":    graph.FormatDot,
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:t:",
		[]string{
			"help",
			"output=",
			"to=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	outputPath := ""
	to := "gaston"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-o", "--output":
			outputPath = cmd.AssertFile(oa.Arg())
		case "-t", "--to":
			to = oa.Arg()
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	write, has := writers[to]
	if !has {
		fmt.Fprintf(os.Stderr, "Unknown output format '%v'\n", to)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "You must supply an input format")
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
		fmt.Fprintln(os.Stderr, "You must supply exactly one corpus path")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	inputPath := cmd.AssertFileOrDirExists(args[0])

	graphs, err := cmd.Load(loader, inputPath)
	if err != nil {
		errors.Logf("ERROR", "could not load %v : %v", inputPath, err)
		return 1
	}

	var output io.Writer
	if outputPath != "" {
		outputf, err := os.Create(outputPath)
		if err != nil {
			errors.Logf("ERROR", "could not open %v : %v", outputPath, err)
			return 1
		}
		defer outputf.Close()
		if strings.HasSuffix(outputPath, ".gz") {
			z := gzip.NewWriter(outputf)
			defer z.Close()
			output = z
		} else {
			output = outputf
		}
	} else {
		outputPath = "<stdout>"
		output = os.Stdout
	}
	buf := bufio.NewWriter(output)

	errors.Logf("INFO", "converting %v graphs from %v writing %v to %v", len(graphs), inputPath, to, outputPath)
	for _, g := range graphs {
		if err := write(buf, g); err != nil {
			errors.Logf("ERROR", "error writing graph %v %v", g.Id, err)
			return 1
		}
	}
	if err := buf.Flush(); err != nil {
		errors.Logf("ERROR", "error writing %v %v", outputPath, err)
		return 1
	}
	return 0
}
