// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package checksum

import (
	"hash/crc32"
	"testing"

	"github.com/marwlod/bwt/internal/testutil"
)

func TestChecksum(t *testing.T) {
	defer func(n int) { SegmentSize = n }(SegmentSize)
	SegmentSize = 1000

	rand := testutil.NewRand(0)
	var vectors = []struct {
		input []byte
	}{
		{input: nil},
		{input: []byte("a")},
		{input: rand.Bytes(999)},
		{input: rand.Bytes(1000)},
		{input: rand.Bytes(1001)},
		{input: rand.Bytes(12345)},
		{input: testutil.Repeats(1, 40000)},
	}

	for i, v := range vectors {
		got := Checksum(v.input)
		want := crc32.ChecksumIEEE(v.input)
		if got != want {
			t.Errorf("test %d, checksum mismatch: got 0x%08x, want 0x%08x", i, got, want)
		}
	}
}

func TestCombine(t *testing.T) {
	a, b := []byte("ABRACADABRA"), []byte("!")
	got := Combine(crc32.ChecksumIEEE(a), crc32.ChecksumIEEE(b), int64(len(b)))
	want := crc32.ChecksumIEEE([]byte("ABRACADABRA!"))
	if got != want {
		t.Errorf("combine mismatch: got 0x%08x, want 0x%08x", got, want)
	}
}
