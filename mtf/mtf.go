// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package mtf implements the move-to-front recoder.
//
// Every byte is replaced by its current rank in a 256-entry symbol table, and
// the symbol is then moved to rank 0 while the symbols ahead of it shift back
// by one. Runs of a repeated symbol thus become runs of zeros, and recently
// seen symbols get small ranks.
//
// For example, encoding "BANANA" with the identity table yields:
//	[]byte{66, 66, 78, 1, 1, 1}
package mtf

import "github.com/marwlod/bwt/internal"

// Coder performs move-to-front encoding and decoding. The symbol table is
// reset to the identity at the start of every call, so a Coder carries no
// state between calls. A Coder must not be used concurrently.
type Coder struct {
	dict [internal.AlphabetSize]byte
}

// Encode returns the rank of each byte of vals. The input is not modified.
func (c *Coder) Encode(vals []byte) []byte {
	c.dict = internal.IdentityLUT
	idxs := make([]byte, len(vals))
	for i, val := range vals {
		var idx int // Reverse lookup idx in dict
		for di, dv := range c.dict {
			if dv == val {
				idx = di
				break
			}
		}
		c.moveToFront(idx)
		idxs[i] = byte(idx)
	}
	return idxs
}

// Decode reverses Encode. The input is not modified.
func (c *Coder) Decode(idxs []byte) []byte {
	c.dict = internal.IdentityLUT
	vals := make([]byte, len(idxs))
	for i, idx := range idxs {
		vals[i] = c.dict[idx] // Forward lookup val in dict
		c.moveToFront(int(idx))
	}
	return vals
}

func (c *Coder) moveToFront(idx int) {
	val := c.dict[idx]
	copy(c.dict[1:], c.dict[:idx])
	c.dict[0] = val
}

// Encode move-to-front encodes vals with a fresh table.
func Encode(vals []byte) []byte {
	var c Coder
	return c.Encode(vals)
}

// Decode move-to-front decodes idxs with a fresh table.
func Decode(idxs []byte) []byte {
	var c Coder
	return c.Decode(idxs)
}
