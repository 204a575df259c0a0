// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the circular suffix ordering, the Burrows-Wheeler
// transform and its inverse for single, fully materialized blocks.
//
// A block is transformed into a pair (firstIndex, lastColumn), where
// lastColumn holds the last byte of every circular rotation of the block in
// sorted order and firstIndex is the row of the unrotated block. The inverse
// transform rebuilds the block from the pair alone.
package bwt

import (
	"math"

	"github.com/marwlod/bwt/internal/errors"
)

// MaxBlockSize is the largest block that can be transformed. The row index of
// the unrotated block must fit in the 32-bit field of a frame.
const MaxBlockSize = math.MaxInt32

var (
	// ErrInvalidInput reports an empty block, a firstIndex outside the block,
	// or mismatching buffer lengths.
	ErrInvalidInput error = errors.Error{Code: errors.Invalid, Pkg: "bwt"}

	// ErrMalformedStream reports a frame that ended before its header did,
	// or transform data that does not describe any block.
	ErrMalformedStream error = errors.Error{Code: errors.Corrupted, Pkg: "bwt"}

	// ErrIndexOutOfRange reports a row lookup beyond the block bounds.
	ErrIndexOutOfRange error = errors.Error{Code: errors.OutOfRange, Pkg: "bwt"}
)

func errInvalid(msg string) error    { return errors.New("bwt", errors.Invalid, msg) }
func errCorrupted(msg string) error  { return errors.New("bwt", errors.Corrupted, msg) }
func errOutOfRange(msg string) error { return errors.New("bwt", errors.OutOfRange, msg) }

// errRecover must be deferred directly for recover to see the panic.
var errRecover = errors.Recover
