// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package checksum computes the CRC-32 of a block by hashing fixed-size
// segments concurrently and folding the partial results together.
package checksum

import (
	"hash/crc32"

	hashutil "github.com/dsnet/golib/hashmerge"
	"golang.org/x/sync/errgroup"
)

// SegmentSize is the number of bytes hashed by a single goroutine.
// Blocks no larger than one segment are hashed inline.
var SegmentSize = 1 << 20

// Checksum returns the CRC-32 (IEEE) of buf. The result is identical to
// crc32.ChecksumIEEE(buf).
func Checksum(buf []byte) uint32 {
	if len(buf) <= SegmentSize {
		return crc32.ChecksumIEEE(buf)
	}

	segs := (len(buf) + SegmentSize - 1) / SegmentSize
	crcs := make([]uint32, segs)
	var g errgroup.Group
	for i := 0; i < segs; i++ {
		i := i
		g.Go(func() error {
			crcs[i] = crc32.ChecksumIEEE(segment(buf, i))
			return nil
		})
	}
	g.Wait()

	crc := crcs[0]
	for i := 1; i < segs; i++ {
		crc = Combine(crc, crcs[i], int64(len(segment(buf, i))))
	}
	return crc
}

// Combine returns the CRC-32 of the concatenation A||B, given crc1 of A,
// crc2 of B, and the length of B.
func Combine(crc1, crc2 uint32, len2 int64) uint32 {
	return hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, len2)
}

func segment(buf []byte, i int) []byte {
	lo := i * SegmentSize
	hi := lo + SegmentSize
	if hi > len(buf) {
		hi = len(buf)
	}
	return buf[lo:hi]
}
