// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"fmt"

	"github.com/marwlod/bwt/internal"
)

// Transform performs the Burrows-Wheeler transform with a chosen sorting
// algorithm. The zero value uses PrefixDoubling.
type Transform struct {
	Algorithm Algorithm
}

// Forward returns the row of the unrotated block among its sorted rotations
// and the last column of the sorted rotation matrix.
// The block is not modified.
func (t *Transform) Forward(block []byte) (firstIndex int, lastColumn []byte, err error) {
	csa, err := NewCircularSuffixArray(block, t.Algorithm)
	if err != nil {
		return 0, nil, err
	}
	n := len(block)
	lastColumn = make([]byte, n)
	firstIndex = -1
	for k, i := range csa.order {
		if i == 0 {
			firstIndex = k
			i = n
		}
		lastColumn[k] = block[i-1]
	}
	return firstIndex, lastColumn, nil
}

// Inverse reconstructs the block from the output of Forward.
func (t *Transform) Inverse(firstIndex int, lastColumn []byte) ([]byte, error) {
	block := make([]byte, len(lastColumn))
	if err := t.InverseTo(block, firstIndex, lastColumn); err != nil {
		return nil, err
	}
	return block, nil
}

// InverseTo is like Inverse, but writes the block into dst, which must have
// the same length as lastColumn. The dst and lastColumn slices must not
// overlap.
//
// If lastColumn is not the output of Forward for any block, ErrMalformedStream
// is returned and the contents of dst are unspecified.
func (t *Transform) InverseTo(dst []byte, firstIndex int, lastColumn []byte) error {
	n := len(lastColumn)
	switch {
	case n == 0:
		return errInvalid("empty last column")
	case n > MaxBlockSize:
		return errInvalid("block too large")
	case firstIndex < 0 || firstIndex >= n:
		return errInvalid(fmt.Sprintf("first index %d not in [0, %d)", firstIndex, n))
	case len(dst) != n:
		return errInvalid(fmt.Sprintf("destination length %d, want %d", len(dst), n))
	}

	// The i-th occurrence of a byte in the last column is the i-th occurrence
	// of that byte in the first column. A stable counting pass maps each row
	// to the row of its successor rotation.
	var cnt [internal.AlphabetSize + 1]int
	for _, c := range lastColumn {
		cnt[int(c)+1]++
	}
	for c := 1; c < len(cnt); c++ {
		cnt[c] += cnt[c-1]
	}
	next := make([]int, n)
	for i, c := range lastColumn {
		next[cnt[c]] = i
		cnt[c]++
	}

	// The walk from the first row visits every row exactly once, unless the
	// block is k copies of a primitive unit of length n/k. Then the rows form
	// n/k groups of k equal rotations, each group ending in the same byte, and
	// the walk stays on the first row of every group.
	start := next[firstIndex]
	row, period := start, n
	for i := range dst {
		if i > 0 && row == start && period == n {
			if n%i != 0 {
				return errCorrupted("successor map is not a single cycle")
			}
			period = i
		}
		dst[i] = lastColumn[row]
		row = next[row]
	}
	if k := n / period; k > 1 {
		if firstIndex%k != 0 {
			return errCorrupted("first index inside a group of equal rotations")
		}
		for g := 0; g < n; g += k {
			for _, c := range lastColumn[g+1 : g+k] {
				if c != lastColumn[g] {
					return errCorrupted("successor map is not a single cycle")
				}
			}
		}
	}
	return nil
}

var defaultTransform Transform

// Forward transforms block with the default algorithm.
func Forward(block []byte) (firstIndex int, lastColumn []byte, err error) {
	return defaultTransform.Forward(block)
}

// Inverse reverses Forward.
func Inverse(firstIndex int, lastColumn []byte) ([]byte, error) {
	return defaultTransform.Inverse(firstIndex, lastColumn)
}
