// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"fmt"
	"strings"

	"github.com/marwlod/bwt/internal"
	"github.com/marwlod/bwt/internal/errors"
)

// The circular suffix array of a block of length n is the permutation of the
// start offsets [0, n) that sorts all rotations of the block. Rotations are
// never materialized; they are compared through index arithmetic modulo n.
//
// A periodic block has identical rotations (all rotations of "AAAA" are
// equal). Equal rotations are ordered by ascending start offset so that every
// algorithm below produces the exact same permutation.
//
// References:
//	https://algs4.cs.princeton.edu/63suffix/
//	https://en.wikipedia.org/wiki/Burrows%E2%80%93Wheeler_transform

// Algorithm selects the method used to sort circular rotations.
type Algorithm int

const (
	// PrefixDoubling ranks rotations by prefixes of doubling length using
	// counting sorts. It runs in O(n log n) and is the default.
	PrefixDoubling Algorithm = iota

	// Comparison sorts offsets with a comparator that walks up to n bytes.
	// It runs in O(n² log n) in the worst case and serves as the reference.
	Comparison

	// ParallelComparison sorts disjoint runs of offsets concurrently with the
	// Comparison comparator and merges them.
	ParallelComparison
)

var algNames = map[Algorithm]string{
	PrefixDoubling:     "doubling",
	Comparison:         "comparison",
	ParallelComparison: "parallel",
}

func (a Algorithm) String() string {
	if s, ok := algNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm returns the Algorithm with the given name.
func ParseAlgorithm(s string) (Algorithm, error) {
	for a, name := range algNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return 0, errInvalid(fmt.Sprintf("unknown sort algorithm %q", s))
}

// CircularSuffixArray is the sorted order of all circular rotations of a block.
type CircularSuffixArray struct {
	order []int
}

// NewCircularSuffixArray sorts the circular rotations of block.
// The block is not retained or modified.
func NewCircularSuffixArray(block []byte, alg Algorithm) (csa *CircularSuffixArray, err error) {
	defer errRecover(&err)

	if len(block) == 0 {
		return nil, errInvalid("empty block")
	}
	if len(block) > MaxBlockSize {
		return nil, errInvalid("block too large")
	}
	order, err := sortRotations(block, alg)
	if err != nil {
		return nil, err
	}
	if internal.Debug {
		checkOrder(block, order)
	}
	return &CircularSuffixArray{order: order}, nil
}

// Len reports the length of the block.
func (csa *CircularSuffixArray) Len() int { return len(csa.order) }

// Index returns the start offset of the k-th smallest rotation.
func (csa *CircularSuffixArray) Index(k int) (int, error) {
	if k < 0 || k >= len(csa.order) {
		return 0, errOutOfRange(fmt.Sprintf("row %d not in [0, %d)", k, len(csa.order)))
	}
	return csa.order[k], nil
}

// Order returns a copy of the full permutation.
func (csa *CircularSuffixArray) Order() []int {
	return append([]int(nil), csa.order...)
}

func sortRotations(block []byte, alg Algorithm) ([]int, error) {
	switch alg {
	case PrefixDoubling:
		return sortDoubling(block), nil
	case Comparison, ParallelComparison:
		order := make([]int, len(block))
		for i := range order {
			order[i] = i
		}
		if alg == Comparison {
			sortComparison(block, order)
		} else {
			sortParallel(block, order)
		}
		return order, nil
	default:
		return nil, errInvalid(fmt.Sprintf("unknown sort algorithm %v", alg))
	}
}

// checkOrder panics unless order is a permutation of the offsets that lists
// the rotations of block in ascending order.
func checkOrder(block []byte, order []int) {
	seen := make([]bool, len(block))
	for k, i := range order {
		if i < 0 || i >= len(block) || seen[i] {
			errors.Panic(errors.New("bwt", errors.Internal, fmt.Sprintf("offset %d repeated in order", i)))
		}
		seen[i] = true
		if k > 0 && !lessRotation(block, order[k-1], i) {
			errors.Panic(errors.New("bwt", errors.Internal, fmt.Sprintf("rows %d and %d out of order", k-1, k)))
		}
	}
}
