// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/marwlod/bwt/internal/tool/bench"
)

var (
	formatsFlag = &cli.StringFlag{
		Name:  "formats",
		Usage: "list of back-end formats (fl, zstd, xz)",
		Value: "fl,zstd,xz",
	}
	testsFlag = &cli.StringFlag{
		Name:  "tests",
		Usage: "list of benchmark tests (encRate, decRate, ratio)",
		Value: "ratio",
	}
	codecsFlag = &cli.StringFlag{
		Name:  "codecs",
		Usage: "list of pre-processing codecs (raw, mtf, bwt)",
		Value: "raw,mtf,bwt",
	}
	pathsFlag = &cli.StringFlag{
		Name:  "paths",
		Usage: "list of paths to search for input files",
		Value: ".",
	}
	filesFlag = &cli.StringFlag{
		Name:  "files",
		Usage: "list of input files or generators (" + generatorNames() + ")",
		Value: "repeats,dna,random",
	}
	levelsFlag = &cli.StringFlag{
		Name:  "levels",
		Usage: "list of compression levels",
		Value: "6",
	}
	sizesFlag = &cli.StringFlag{
		Name:  "sizes",
		Usage: "list of input sizes",
		Value: "1e4,1e5",
	}
)

func generatorNames() string {
	var s []string
	for k := range bench.Generators {
		s = append(s, k)
	}
	sort.Strings(s)
	return strings.Join(s, ", ")
}

func (t *tool) benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "compare back-end compressors with and without the pre-processing stages",
		Flags: []cli.Flag{
			formatsFlag, testsFlag, codecsFlag, pathsFlag, filesFlag, levelsFlag, sizesFlag,
		},
		OnUsageError: usageError,
		Action:       t.bench,
	}
}

var listSep = regexp.MustCompile("[,:]")

func (t *tool) bench(c *cli.Context) error {
	var formats []bench.Format
	for _, s := range listSep.Split(c.String(formatsFlag.Name), -1) {
		f, ok := bench.ParseFormat(s)
		if !ok {
			return cli.Exit(fmt.Sprintf("invalid format %q", s), 2)
		}
		formats = append(formats, f)
	}
	var tests []bench.Test
	for _, s := range listSep.Split(c.String(testsFlag.Name), -1) {
		tt, ok := bench.ParseTest(s)
		if !ok {
			return cli.Exit(fmt.Sprintf("invalid test %q", s), 2)
		}
		tests = append(tests, tt)
	}
	var levels, sizes []int
	for _, s := range listSep.Split(c.String(levelsFlag.Name), -1) {
		lvl, err := bench.ParseSize(s)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid level %q", s), 2)
		}
		levels = append(levels, lvl)
	}
	for _, s := range listSep.Split(c.String(sizesFlag.Name), -1) {
		n, err := bench.ParseSize(s)
		if err != nil || n <= 0 || n > t.cfg.Transform.MaxBlockSize {
			return cli.Exit(fmt.Sprintf("invalid size %q", s), 2)
		}
		sizes = append(sizes, n)
	}
	codecs := listSep.Split(c.String(codecsFlag.Name), -1)
	files := listSep.Split(c.String(filesFlag.Name), -1)
	bench.Paths = listSep.Split(c.String(pathsFlag.Name), -1)

	ts := time.Now()
	runBenchmarks(c.App.Writer, files, codecs, formats, tests, levels, sizes)
	t.log.Info("Benchmarks done", "elapsed", time.Since(ts))
	return nil
}

func runBenchmarks(w io.Writer, files, codecs []string, formats []bench.Format, tests []bench.Test, levels, sizes []int) {
	for _, f := range formats {
		// Get lists of encoders and decoders that exist.
		var encs, decs []string
		for _, c := range codecs {
			if _, ok := bench.Encoders[f][c]; ok {
				encs = append(encs, c)
			}
			if _, ok := bench.Decoders[f][c]; ok {
				decs = append(decs, c)
			}
		}

		for _, tt := range tests {
			fmt.Fprintf(w, "BENCHMARK: %v:%v\n", f, tt)
			if len(encs) == 0 || (tt == bench.TestDecodeRate && len(decs) == 0) {
				fmt.Fprintf(w, "\tSKIP: There are no codecs available.\n\n")
				continue
			}

			var results [][]bench.Result
			var names, used []string
			var title, suffix string
			switch tt {
			case bench.TestEncodeRate:
				used, title = encs, "MB/s"
				results, names = bench.BenchmarkEncoderSuite(f, encs, files, levels, sizes, nil)
			case bench.TestDecodeRate:
				used, title = decs, "MB/s"
				results, names = bench.BenchmarkDecoderSuite(f, decs, files, levels, sizes, nil)
			case bench.TestCompressRatio:
				used, title, suffix = encs, "ratio", "x"
				results, names = bench.BenchmarkRatioSuite(f, encs, files, levels, sizes, nil)
			}
			printResults(w, results, names, used, title, suffix)
			fmt.Fprintln(w)
		}
	}
}

func printResults(w io.Writer, results [][]bench.Result, names, codecs []string, title, suffix string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	header := []string{"benchmark"}
	for _, c := range codecs {
		header = append(header, c+" "+title, "delta")
	}
	table.SetHeader(header)

	for j, row := range results {
		cells := []string{names[j]}
		for _, r := range row {
			var rs, ds string
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				rs = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				ds = fmt.Sprintf("%.2f", r.D) + "x"
			}
			cells = append(cells, rs, ds)
		}
		table.Append(cells)
	}
	table.Render()
}
