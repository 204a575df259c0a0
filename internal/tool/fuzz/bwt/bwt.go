// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package fuzzbwt

import (
	"bytes"
	"errors"
	"reflect"

	"github.com/marwlod/bwt/bwt"
	"github.com/marwlod/bwt/pipeline"
)

func Fuzz(data []byte) int {
	block, ok := testDecoder(data)
	testSorters(data)
	testRoundTrip(data)
	if ok {
		testRoundTrip(block)
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoder treats the input as an encoded stream. Decoding is allowed to
// fail, but only with one of the documented errors.
func testDecoder(data []byte) ([]byte, bool) {
	block, err := pipeline.Decode(data)
	switch {
	case err == nil:
		return block, true
	case errors.Is(err, bwt.ErrInvalidInput), errors.Is(err, bwt.ErrMalformedStream):
		return nil, false
	}
	panic(err)
}

// testSorters checks that every sorting algorithm yields the same order.
func testSorters(data []byte) {
	if len(data) == 0 {
		return
	}
	want := bwt.SortRotations(data, bwt.Comparison)
	for _, alg := range []bwt.Algorithm{bwt.PrefixDoubling, bwt.ParallelComparison} {
		if got := bwt.SortRotations(data, alg); !reflect.DeepEqual(got, want) {
			panic("mismatching order for " + alg.String())
		}
	}
	for k := 1; k < len(want); k++ {
		c := bwt.CompareRotations(data, want[k-1], want[k])
		if c > 0 || (c == 0 && want[k-1] > want[k]) {
			panic("rotations out of order")
		}
	}
}

func testRoundTrip(want []byte) {
	if len(want) == 0 {
		return
	}
	enc, err := pipeline.Encode(want)
	if err != nil {
		panic(err)
	}
	got, err := pipeline.Decode(enc)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(got, want) {
		panic("mismatching bytes")
	}
}
