// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/marwlod/bwt/internal/testutil"
)

func TestMoveToFront(t *testing.T) {
	var vectors = []struct {
		input  []byte
		output []byte
	}{{
		input:  []byte{},
		output: []byte{},
	}, {
		input:  []byte{3},
		output: []byte{3},
	}, {
		input:  []byte("BANANA"),
		output: []byte{66, 66, 78, 1, 1, 1},
	}, {
		input:  []byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
		output: []byte{2, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}, {
		input:  []byte{9, 8, 7, 6, 5, 4, 3, 2, 1},
		output: []byte{9, 9, 9, 9, 9, 9, 9, 9, 9},
	}, {
		input:  []byte{42, 47, 42, 47, 42, 47, 42, 47, 42, 47, 42, 47},
		output: []byte{42, 47, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}, {
		input:  []byte{0, 5, 2, 3, 4, 4, 3, 1, 2, 3, 3, 3, 3, 3, 3, 4, 4, 4, 5, 2, 3, 3},
		output: []byte{0, 5, 3, 4, 5, 0, 1, 5, 3, 2, 0, 0, 0, 0, 0, 3, 0, 0, 4, 3, 3, 0},
	}, {
		input:  []byte{255, 255, 0, 255},
		output: []byte{255, 0, 1, 1},
	}, {
		input:  []byte("ARD!RCAAAABB"),
		output: []byte{65, 82, 69, 36, 2, 69, 4, 0, 0, 0, 69, 0},
	}}

	var c Coder
	for i, v := range vectors {
		in := append([]byte(nil), v.input...)
		output := c.Encode(in)
		if !bytes.Equal(in, v.input) {
			t.Errorf("test %d, Encode modified its input", i)
		}
		if diff := cmp.Diff(v.output, output); diff != "" {
			t.Errorf("test %d, output mismatch (-want +got):\n%s", i, diff)
		}
		input := c.Decode(output)
		if diff := cmp.Diff(v.input, input); diff != "" {
			t.Errorf("test %d, input mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestFreshTable(t *testing.T) {
	// Each call starts over from the identity table.
	var c Coder
	first := c.Encode([]byte("BANANA"))
	second := c.Encode([]byte("BANANA"))
	if !bytes.Equal(first, second) {
		t.Errorf("state leaked between calls:\ngot  %v\nwant %v", second, first)
	}
	if got := Encode([]byte("BANANA")); !bytes.Equal(got, first) {
		t.Errorf("package Encode mismatch:\ngot  %v\nwant %v", got, first)
	}
	if got := Decode(first); string(got) != "BANANA" {
		t.Errorf("package Decode mismatch: got %q, want %q", got, "BANANA")
	}
}

// checkPermutation reports whether dict holds every byte exactly once.
func checkPermutation(dict *[256]byte) bool {
	var seen [256]bool
	for _, b := range dict {
		if seen[b] {
			return false
		}
		seen[b] = true
	}
	return true
}

func TestTablePermutation(t *testing.T) {
	rand := testutil.NewRand(0)
	vals := append(rand.Bytes(2000), rand.Alphabet(2000, 3, 'x')...)

	var c Coder
	for i := range c.dict {
		c.dict[i] = byte(i)
	}
	for i, v := range vals {
		var idx int
		for idx = range c.dict {
			if c.dict[idx] == v {
				break
			}
		}
		c.moveToFront(idx)
		if c.dict[0] != v || !checkPermutation(&c.dict) {
			t.Fatalf("symbol %d, table is no longer a permutation", i)
		}
	}

	// Decoding indexes the table by rank instead of searching it.
	for i, r := range rand.Bytes(4000) {
		v := c.dict[r]
		c.moveToFront(int(r))
		if c.dict[0] != v || !checkPermutation(&c.dict) {
			t.Fatalf("rank %d, table is no longer a permutation", i)
		}
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vals := rapid.SliceOfN(rapid.Byte(), 0, 1024).Draw(t, "vals")
		idxs := Encode(vals)
		if len(idxs) != len(vals) {
			t.Fatalf("length mismatch: got %d, want %d", len(idxs), len(vals))
		}
		if got := Decode(idxs); !bytes.Equal(got, vals) {
			t.Fatalf("round trip mismatch:\ngot  %x\nwant %x", got, vals)
		}
	})
}

func TestDecodeIsTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		idxs := rapid.SliceOfN(rapid.Byte(), 0, 512).Draw(t, "idxs")
		if got := Encode(Decode(idxs)); !bytes.Equal(got, idxs) {
			t.Fatalf("round trip mismatch:\ngot  %x\nwant %x", got, idxs)
		}
	})
}

func FuzzMoveToFront(f *testing.F) {
	f.Add([]byte("BANANA"))
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, b []byte) {
		if got := Decode(Encode(b)); !bytes.Equal(got, b) {
			t.Fatalf("round trip mismatch:\ngot  %x\nwant %x", got, b)
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	input := testutil.Repeats(0, 1<<16)
	b.SetBytes(int64(len(input)))
	var c Coder
	for i := 0; i < b.N; i++ {
		c.Encode(input)
	}
}

func BenchmarkDecode(b *testing.B) {
	input := Encode(testutil.Repeats(0, 1<<16))
	b.SetBytes(int64(len(input)))
	var c Coder
	for i := 0; i < b.N; i++ {
		c.Decode(input)
	}
}
