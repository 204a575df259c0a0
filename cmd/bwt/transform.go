// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/marwlod/bwt/bwt"
	"github.com/marwlod/bwt/internal/checksum"
	"github.com/marwlod/bwt/mtf"
	"github.com/marwlod/bwt/pipeline"
)

var modeFlag = &cli.StringFlag{
	Name:  "mode",
	Usage: "direction of the transform; also accepted as the first argument",
}

// parseMode resolves the direction from the first argument or --mode.
// The symbols "-" and "+" stand for the forward and inverse directions.
func parseMode(c *cli.Context, fwd, inv string) (forward bool, err error) {
	mode := c.String(modeFlag.Name)
	if c.Args().Present() {
		mode = c.Args().First()
	}
	switch mode {
	case fwd, "-":
		return true, nil
	case inv, "+":
		return false, nil
	}
	return false, cli.Exit(fmt.Sprintf("invalid mode %q: must be one of %s, %s, -, +", mode, fwd, inv), 2)
}

func (t *tool) transformCommand() *cli.Command {
	return &cli.Command{
		Name:         "transform",
		Usage:        "apply the Burrows-Wheeler transform or its inverse",
		ArgsUsage:    "[- | +]",
		Flags:        append([]cli.Flag{modeFlag}, ioFlags...),
		OnUsageError: usageError,
		Action:       t.transform,
	}
}

func (t *tool) transform(c *cli.Context) error {
	forward, err := parseMode(c, "forward", "inverse")
	if err != nil {
		return err
	}
	extra := bwt.FrameHeaderSize
	if forward {
		extra = 0
	}
	in, err := t.readInput(c, extra)
	if err != nil {
		return err
	}

	tr := bwt.Transform{Algorithm: t.cfg.algorithm()}
	if forward {
		ptr, last, err := tr.Forward(in)
		if err != nil {
			return errors.Wrap(err, "transform")
		}
		var buf bytes.Buffer
		if err := bwt.WriteFrame(&buf, ptr, last); err != nil {
			return errors.Wrap(err, "transform")
		}
		t.log.Info("Applied transform", "size", len(in), "firstIndex", ptr,
			"algorithm", tr.Algorithm.String(), "crc", crcString(in))
		return t.writeOutput(c, buf.Bytes())
	}

	ptr, last, err := bwt.ReadFrame(bytes.NewReader(in))
	if err != nil {
		return errors.Wrap(err, "inverse transform")
	}
	out, err := tr.Inverse(ptr, last)
	if err != nil {
		return errors.Wrap(err, "inverse transform")
	}
	t.log.Info("Applied inverse transform", "size", len(out), "firstIndex", ptr, "crc", crcString(out))
	return t.writeOutput(c, out)
}

func (t *tool) mtfCommand() *cli.Command {
	return &cli.Command{
		Name:         "mtf",
		Usage:        "move-to-front encode or decode",
		ArgsUsage:    "[- | +]",
		Flags:        append([]cli.Flag{modeFlag}, ioFlags...),
		OnUsageError: usageError,
		Action:       t.moveToFront,
	}
}

func (t *tool) moveToFront(c *cli.Context) error {
	encode, err := parseMode(c, "encode", "decode")
	if err != nil {
		return err
	}
	in, err := t.readInput(c, bwt.FrameHeaderSize)
	if err != nil {
		return err
	}
	var out []byte
	if encode {
		out = mtf.Encode(in)
	} else {
		out = mtf.Decode(in)
	}
	t.log.Info("Applied move-to-front", "encode", encode, "size", len(in),
		"zeros", bytes.Count(out, []byte{0}))
	return t.writeOutput(c, out)
}

var verifyFlag = &cli.BoolFlag{
	Name:  "verify",
	Usage: "decode the output again and compare checksums",
}

func (t *tool) compressCommand() *cli.Command {
	return &cli.Command{
		Name:         "compress",
		Usage:        "apply the transform followed by move-to-front",
		Flags:        append([]cli.Flag{verifyFlag}, ioFlags...),
		OnUsageError: usageError,
		Action:       t.compress,
	}
}

func (t *tool) compress(c *cli.Context) error {
	in, err := t.readInput(c, 0)
	if err != nil {
		return err
	}
	enc := pipeline.Encoder{Algorithm: t.cfg.algorithm()}
	out, st, err := enc.Encode(in)
	if err != nil {
		return errors.Wrap(err, "compress")
	}
	if c.Bool(verifyFlag.Name) {
		var dec pipeline.Decoder
		_, dst, err := dec.Decode(out)
		if err != nil {
			return errors.Wrap(err, "verify")
		}
		if dst.Checksum != st.Checksum {
			return errors.Errorf("verify: checksum mismatch: got %08x, want %08x", dst.Checksum, st.Checksum)
		}
		t.log.Debug("Verified round trip", "crc", fmt.Sprintf("%08x", st.Checksum))
	}
	t.log.Info("Compressed block", "size", st.BlockSize, "firstIndex", st.FirstIndex,
		"algorithm", enc.Algorithm.String(), "zeroRanks", st.ZeroRanks, "crc", fmt.Sprintf("%08x", st.Checksum))
	return t.writeOutput(c, out)
}

func (t *tool) decompressCommand() *cli.Command {
	return &cli.Command{
		Name:         "decompress",
		Usage:        "reverse the compress command",
		Flags:        ioFlags,
		OnUsageError: usageError,
		Action:       t.decompress,
	}
}

func (t *tool) decompress(c *cli.Context) error {
	in, err := t.readInput(c, bwt.FrameHeaderSize)
	if err != nil {
		return err
	}
	var dec pipeline.Decoder
	out, st, err := dec.Decode(in)
	if err != nil {
		return errors.Wrap(err, "decompress")
	}
	t.log.Info("Decompressed block", "size", st.BlockSize, "firstIndex", st.FirstIndex,
		"crc", fmt.Sprintf("%08x", st.Checksum))
	return t.writeOutput(c, out)
}

func crcString(b []byte) string {
	return fmt.Sprintf("%08x", checksum.Checksum(b))
}
