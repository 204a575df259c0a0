// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command bwt applies the Burrows-Wheeler transform, the move-to-front recoder
// and their composition to a single block read from a file or standard input.
//
// Example usage:
//	$ bwt transform - < input.txt > input.bwt
//	$ bwt transform + < input.bwt
//	$ bwt mtf --mode encode < input.bwt > input.mtf
//	$ bwt compress --verify --input input.txt --output input.bm
//	$ bwt inspect --rows 8 < input.txt
//	$ bwt bench --formats fl,xz --files repeats,dna --sizes 1e4,1e5
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the tool and returns the process exit status: 0 on success,
// 2 on usage errors and 1 on any other failure.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := newApp(stdin, stdout, stderr).Run(args)
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "bwt: %v\n", err)
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

// tool holds the state shared by all commands of one invocation.
type tool struct {
	cfg *Config
	log *slog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	t := new(tool)
	return &cli.App{
		Name:      "bwt",
		Usage:     "Burrows-Wheeler and move-to-front block transforms",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			configFileFlag,
			algorithmFlag,
			maxBlockSizeFlag,
			verbosityFlag,
			logJSONFlag,
		},
		Before:         t.setup,
		OnUsageError:   usageError,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			t.transformCommand(),
			t.mtfCommand(),
			t.compressCommand(),
			t.decompressCommand(),
			t.inspectCommand(),
			t.benchCommand(),
		},
	}
}

func (t *tool) setup(c *cli.Context) error {
	cfg, err := makeConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	log, err := newLogger(c.App.ErrWriter, cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	t.cfg, t.log = cfg, log
	return nil
}

func usageError(c *cli.Context, err error, isSubcommand bool) error {
	return cli.Exit(err.Error(), 2)
}

var (
	inputFlag = &cli.StringFlag{
		Name:      "input",
		Aliases:   []string{"i"},
		Usage:     "read the block from `FILE` instead of standard input",
		TakesFile: true,
	}
	outputFlag = &cli.StringFlag{
		Name:      "output",
		Aliases:   []string{"o"},
		Usage:     "write the result to `FILE` instead of standard output",
		TakesFile: true,
	}
	ioFlags = []cli.Flag{inputFlag, outputFlag}
)

// readInput reads the whole input, refusing inputs larger than the configured
// block size plus extra bytes of framing.
func (t *tool) readInput(c *cli.Context, extra int) ([]byte, error) {
	r := c.App.Reader
	if name := c.String(inputFlag.Name); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		defer f.Close()
		r = f
	}
	max := t.cfg.Transform.MaxBlockSize + extra
	b, err := io.ReadAll(io.LimitReader(r, int64(max)+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if len(b) > max {
		return nil, errors.Errorf("input exceeds the maximum size of %d bytes", max)
	}
	return b, nil
}

func (t *tool) writeOutput(c *cli.Context, b []byte) error {
	if name := c.String(outputFlag.Name); name != "" && name != "-" {
		return errors.Wrap(os.WriteFile(name, b, 0644), "writing output")
	}
	_, err := c.App.Writer.Write(b)
	return errors.Wrap(err, "writing output")
}
