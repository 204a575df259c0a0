// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// A frame carries the output of Forward as a 32-bit big-endian firstIndex
// followed by every byte of the last column up to the end of the stream.
const (
	// FrameHeaderSize is the number of bytes a frame adds to its block.
	FrameHeaderSize = 4

	frameHeaderBits = 8 * FrameHeaderSize
)

// WriteFrame writes firstIndex and lastColumn to w as a single frame.
func WriteFrame(w io.Writer, firstIndex int, lastColumn []byte) error {
	n := len(lastColumn)
	if n == 0 || n > MaxBlockSize {
		return errInvalid(fmt.Sprintf("invalid last column length %d", n))
	}
	if firstIndex < 0 || firstIndex >= n {
		return errInvalid(fmt.Sprintf("first index %d not in [0, %d)", firstIndex, n))
	}

	bw := bitio.NewWriter(w)
	if err := bw.WriteBits(uint64(firstIndex), frameHeaderBits); err != nil {
		return err
	}
	if _, err := bw.Write(lastColumn); err != nil {
		return err
	}
	return bw.Close()
}

// ReadFrame reads a single frame from r until io.EOF.
//
// A stream that ends within the header is reported as ErrMalformedStream.
// A header followed by no data, or by fewer bytes than firstIndex requires,
// is reported as ErrInvalidInput.
func ReadFrame(r io.Reader) (firstIndex int, lastColumn []byte, err error) {
	br := bitio.NewReader(r)
	v, err := br.ReadBits(frameHeaderBits)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return 0, nil, errCorrupted("truncated frame header")
	}
	if err != nil {
		return 0, nil, err
	}
	lastColumn, err = io.ReadAll(br)
	if err != nil {
		return 0, nil, err
	}

	n := uint64(len(lastColumn))
	switch {
	case n == 0:
		return 0, nil, errInvalid("empty last column")
	case v >= n:
		return 0, nil, errInvalid(fmt.Sprintf("first index %d not in [0, %d)", v, n))
	}
	return int(v), lastColumn, nil
}
