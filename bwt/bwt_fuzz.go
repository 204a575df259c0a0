// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

// This file exists to export internal implementation details for fuzz testing.

package bwt

// SortRotations exposes the rotation order computed by alg without the
// validation done by NewCircularSuffixArray.
func SortRotations(block []byte, alg Algorithm) []int {
	order, err := sortRotations(block, alg)
	if err != nil {
		panic(err)
	}
	return order
}

func CompareRotations(block []byte, i, j int) int {
	return compareRotations(block, i, j)
}
