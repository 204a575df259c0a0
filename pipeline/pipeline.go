// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package pipeline chains the Burrows-Wheeler transform and the move-to-front
// recoder into a reversible pre-processing stage for an entropy coder.
//
// Encoding transforms a block, serializes the result as a frame (see
// bwt.WriteFrame) and move-to-front encodes the frame bytes. Decoding runs the
// same steps backwards.
package pipeline

import (
	"bytes"

	"github.com/marwlod/bwt/bwt"
	"github.com/marwlod/bwt/internal/checksum"
	"github.com/marwlod/bwt/mtf"
)

// Stats describes a single block passing through the pipeline.
type Stats struct {
	BlockSize  int    // Length of the original block
	FirstIndex int    // Row of the original block among the sorted rotations
	Checksum   uint32 // CRC-32 (IEEE) of the original block
	ZeroRanks  int    // Number of zero ranks in the recoded output
}

// Encoder runs the forward pipeline. The zero value is ready for use.
type Encoder struct {
	Algorithm bwt.Algorithm
	mtf       mtf.Coder
}

// Encode returns the recoded frame of block and its statistics.
// The block is not modified.
func (e *Encoder) Encode(block []byte) ([]byte, Stats, error) {
	tr := bwt.Transform{Algorithm: e.Algorithm}
	ptr, last, err := tr.Forward(block)
	if err != nil {
		return nil, Stats{}, err
	}

	var buf bytes.Buffer
	buf.Grow(len(last) + 4)
	if err := bwt.WriteFrame(&buf, ptr, last); err != nil {
		return nil, Stats{}, err
	}
	out := e.mtf.Encode(buf.Bytes())
	return out, Stats{
		BlockSize:  len(block),
		FirstIndex: ptr,
		Checksum:   checksum.Checksum(block),
		ZeroRanks:  bytes.Count(out, []byte{0}),
	}, nil
}

// Decoder runs the inverse pipeline. The zero value is ready for use.
type Decoder struct {
	tr  bwt.Transform
	mtf mtf.Coder
}

// Decode reverses Encoder.Encode.
func (d *Decoder) Decode(data []byte) ([]byte, Stats, error) {
	frame := d.mtf.Decode(data)
	ptr, last, err := bwt.ReadFrame(bytes.NewReader(frame))
	if err != nil {
		return nil, Stats{}, err
	}
	block, err := d.tr.Inverse(ptr, last)
	if err != nil {
		return nil, Stats{}, err
	}
	return block, Stats{
		BlockSize:  len(block),
		FirstIndex: ptr,
		Checksum:   checksum.Checksum(block),
		ZeroRanks:  bytes.Count(data, []byte{0}),
	}, nil
}

// Encode runs the forward pipeline with the default sorting algorithm.
func Encode(block []byte) ([]byte, error) {
	var e Encoder
	out, _, err := e.Encode(block)
	return out, err
}

// Decode runs the inverse pipeline.
func Decode(data []byte) ([]byte, error) {
	var d Decoder
	block, _, err := d.Decode(data)
	return block, err
}
