// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/marwlod/bwt/bwt"
)

var (
	rowsFlag = &cli.IntFlag{
		Name:  "rows",
		Usage: "number of sorted rotations to print (0 prints all)",
		Value: 32,
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "number of leading bytes of each rotation to print",
		Value: 24,
	}
)

func (t *tool) inspectCommand() *cli.Command {
	return &cli.Command{
		Name:         "inspect",
		Usage:        "print the sorted rotation table of a block",
		Flags:        []cli.Flag{rowsFlag, widthFlag, inputFlag},
		OnUsageError: usageError,
		Action:       t.inspect,
	}
}

func (t *tool) inspect(c *cli.Context) error {
	rows, width := c.Int(rowsFlag.Name), c.Int(widthFlag.Name)
	if rows < 0 || width <= 0 {
		return cli.Exit("rows must be non-negative and width positive", 2)
	}
	in, err := t.readInput(c, 0)
	if err != nil {
		return err
	}
	csa, err := bwt.NewCircularSuffixArray(in, t.cfg.algorithm())
	if err != nil {
		return errors.Wrap(err, "inspect")
	}

	n := csa.Len()
	if rows == 0 || rows > n {
		rows = n
	}
	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Row", "Offset", "Rotation", "Last"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for k := 0; k < rows; k++ {
		i, err := csa.Index(k)
		if err != nil {
			return err
		}
		var mark string
		if i == 0 {
			mark = "*"
		}
		table.Append([]string{
			strconv.Itoa(k) + mark,
			strconv.Itoa(i),
			rotation(in, i, width),
			quote(in[(i+n-1)%n : (i+n-1)%n+1]),
		})
	}
	table.Render()
	t.log.Debug("Inspected block", "size", n, "rows", rows)
	return nil
}

// rotation renders the first width bytes of the rotation starting at i.
func rotation(block []byte, i, width int) string {
	n := len(block)
	var suffix string
	if width >= n {
		width = n
	} else {
		suffix = "..."
	}
	r := make([]byte, width)
	for j := range r {
		r[j] = block[(i+j)%n]
	}
	return quote(r) + suffix
}

func quote(b []byte) string {
	s := strconv.Quote(string(b))
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}
