// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/marwlod/bwt/internal/testutil"
)

func TestCircularSuffixArray(t *testing.T) {
	var vectors = []struct {
		input string
		order []int
	}{
		{input: "A", order: []int{0}},
		{input: "AAAA", order: []int{0, 1, 2, 3}},
		{input: "ABAB", order: []int{0, 2, 1, 3}},
		{input: "BANANA", order: []int{5, 3, 1, 0, 4, 2}},
		{input: "ABRACADABRA!", order: []int{11, 10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 2}},
	}

	for _, alg := range algorithms {
		for i, v := range vectors {
			csa, err := NewCircularSuffixArray([]byte(v.input), alg)
			if err != nil {
				t.Errorf("%v, test %d, unexpected error: %v", alg, i, err)
				continue
			}
			if csa.Len() != len(v.input) {
				t.Errorf("%v, test %d, length mismatch: got %d, want %d", alg, i, csa.Len(), len(v.input))
			}
			if diff := cmp.Diff(v.order, csa.Order()); diff != "" {
				t.Errorf("%v, test %d, order mismatch (-want +got):\n%s", alg, i, diff)
			}
			for k, want := range v.order {
				if got, err := csa.Index(k); err != nil || got != want {
					t.Errorf("%v, test %d, Index(%d) = (%d, %v), want (%d, nil)", alg, i, k, got, err, want)
				}
			}
		}
	}
}

func TestCircularSuffixArrayErrors(t *testing.T) {
	if _, err := NewCircularSuffixArray(nil, PrefixDoubling); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty block, error mismatch: got %v, want %v", err, ErrInvalidInput)
	}

	csa, err := NewCircularSuffixArray([]byte("ABC"), PrefixDoubling)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range []int{-1, 3, 1 << 20} {
		if _, err := csa.Index(k); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Index(%d), error mismatch: got %v, want %v", k, err, ErrIndexOutOfRange)
		}
	}

	// Order must hand out a copy.
	order := csa.Order()
	order[0] = 99
	if got, _ := csa.Index(0); got == 99 {
		t.Errorf("Order exposed internal state")
	}
}

func TestSuffixOrderIsPermutation(t *testing.T) {
	rand := testutil.NewRand(2)
	for i, b := range [][]byte{
		rand.Bytes(1000),
		rand.Alphabet(1000, 1, 'z'),
		rand.Alphabet(1000, 2, 'a'),
		testutil.Repeats(3, 2000),
	} {
		csa, err := NewCircularSuffixArray(b, PrefixDoubling)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		seen := make([]bool, len(b))
		for _, j := range csa.Order() {
			if j < 0 || j >= len(b) || seen[j] {
				t.Fatalf("test %d, offset %d repeated or out of range", i, j)
			}
			seen[j] = true
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	var vectors = []struct {
		input string
		want  Algorithm
		err   error
	}{
		{input: "doubling", want: PrefixDoubling},
		{input: "Comparison", want: Comparison},
		{input: "PARALLEL", want: ParallelComparison},
		{input: "sais", err: ErrInvalidInput},
		{input: "", err: ErrInvalidInput},
	}

	for i, v := range vectors {
		got, err := ParseAlgorithm(v.input)
		if v.err != nil {
			if !errors.Is(err, v.err) {
				t.Errorf("test %d, error mismatch: got %v, want %v", i, err, v.err)
			}
			continue
		}
		if err != nil || got != v.want {
			t.Errorf("test %d, ParseAlgorithm(%q) = (%v, %v), want (%v, nil)", i, v.input, got, err, v.want)
		}
		if got.String() != v.want.String() {
			t.Errorf("test %d, name mismatch: got %s, want %s", i, got, v.want)
		}
	}

	if s := Algorithm(7).String(); s != "Algorithm(7)" {
		t.Errorf("unknown algorithm name: got %s", s)
	}
}

func TestCheckOrder(t *testing.T) {
	block := []byte("ABRACADABRA!")
	var vectors = []struct {
		order []int
		ok    bool
	}{
		{order: []int{11, 10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 2}, ok: true},
		{order: []int{10, 11, 7, 0, 3, 5, 8, 1, 4, 6, 9, 2}},
		{order: []int{11, 10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 9}},
		{order: []int{11, 10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 12}},
	}

	for i, v := range vectors {
		err := func() (err error) {
			defer errRecover(&err)
			checkOrder(block, v.order)
			return nil
		}()
		if (err == nil) != v.ok {
			t.Errorf("test %d, checkOrder error: got %v, want ok=%v", i, err, v.ok)
		}
	}

	// Equal rotations must appear by ascending offset.
	err := func() (err error) {
		defer errRecover(&err)
		checkOrder([]byte("ABAB"), []int{2, 0, 3, 1})
		return nil
	}()
	if err == nil {
		t.Errorf("checkOrder accepted a descending tie")
	}
}
