// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/marwlod/bwt/internal"
)

var (
	reBin = regexp.MustCompile("^[01]{1,64}$")
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reHex = regexp.MustCompile("^H[0-9]+:[0-9a-fA-F]{1,16}$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeBitGen decodes a BitGen formatted string.
//
// The BitGen format allows bit-streams to be generated from a series of tokens
// describing bits in the resulting string. It is used to hand-script frames
// in tests, including truncated and malformed ones.
//
// The first token must be "<<<" (bits are packed starting at the LSB of each
// byte) or ">>>" (bits are packed starting at the MSB, as the frame format
// does). Tokens "<" and ">" switch the bit-parsing mode of subsequent tokens
// between little-endian and big-endian; either may also prefix a single token.
//
// Token kinds:
//	[01]{1,64}                   a bit-string
//	D<n>:<decimal>               an n-bit decimal value
//	H<n>:<hex>                   an n-bit hexadecimal value
//	X:<hex>                      literal bytes; the stream must be byte-aligned
//
// Any token may carry a trailing "*<count>" repetition quantifier. The '#'
// character starts a comment that runs to the end of the line. A stream that
// does not end on a byte boundary is padded with zero bits.
//
// Example, the frame for "ABRACADABRA!":
//	>>> > H32:00000003 X:415244215243414141414242
func DecodeBitGen(str string) ([]byte, error) {
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		toks = append(toks, strings.Fields(s)...)
	}
	if len(toks) == 0 {
		toks = append(toks, "")
	}

	var packMode bool // Bit-packing mode: false is LE, true is BE
	switch toks[0] {
	case "<<<":
	case ">>>":
		packMode = true
	default:
		return nil, errors.New("testutil: unknown stream bit-packing mode")
	}

	bw := bitBuffer{rev: packMode}
	var parseMode bool // Bit-parsing mode: false is LE, true is BE
	for _, t := range toks[1:] {
		pm := parseMode
		if t[0] == '<' || t[0] == '>' {
			pm = t[0] == '>'
			if t = t[1:]; len(t) == 0 {
				parseMode = pm
				continue
			}
		}

		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			n, err := strconv.Atoi(t[i+1:])
			if err != nil {
				return nil, errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = t[:i], n
		}

		var v uint64
		var n uint
		switch {
		case reBin.MatchString(t):
			for _, b := range t {
				v = v<<1 | uint64(b-'0')
			}
			n = uint(len(t))
		case reDec.MatchString(t) || reHex.MatchString(t):
			i := strings.IndexByte(t, ':')
			base := 10
			if t[0] == 'H' {
				base = 16
			}
			nb, err1 := strconv.Atoi(t[1:i])
			nv, err2 := strconv.ParseUint(t[i+1:], base, 64)
			if err1 != nil || err2 != nil || nb > 64 {
				return nil, errors.New("testutil: invalid numeric token: " + t)
			}
			if nb < 64 && nv&((1<<uint(nb))-1) != nv {
				return nil, errors.New("testutil: integer overflow on token: " + t)
			}
			v, n = nv, uint(nb)
		case reRaw.MatchString(t):
			b, err := hex.DecodeString(t[2:])
			if err != nil {
				return nil, errors.New("testutil: invalid raw bytes token: " + t)
			}
			if err := bw.WriteBytes(bytes.Repeat(b, rep)); err != nil {
				return nil, err
			}
			continue
		default:
			return nil, errors.New("testutil: invalid token: " + t)
		}

		// Values are stored LSB first; a big-endian token writes its MSB first.
		if pm {
			v = internal.ReverseUint64N(v, n)
		}
		for i := 0; i < rep; i++ {
			bw.WriteBits64(v, n)
		}
	}

	buf := bw.b
	if packMode {
		for i, b := range buf {
			buf[i] = internal.ReverseLUT[b]
		}
	}
	return buf, nil
}

// bitBuffer is a minimal LSB-first bit writer. When rev is set, literal
// bytes are stored bit-reversed so that the final packing pass restores them.
type bitBuffer struct {
	b   []byte
	m   byte
	rev bool
}

func (b *bitBuffer) WriteBytes(buf []byte) error {
	if b.m != 0x00 {
		return errors.New("testutil: unaligned write")
	}
	for _, c := range buf {
		if b.rev {
			c = internal.ReverseLUT[c]
		}
		b.b = append(b.b, c)
	}
	return nil
}

func (b *bitBuffer) WriteBits64(v uint64, n uint) {
	for i := uint(0); i < n; i++ {
		if b.m == 0x00 {
			b.m = 0x01
			b.b = append(b.b, 0x00)
		}
		if v&(1<<i) != 0 {
			b.b[len(b.b)-1] |= b.m
		}
		b.m <<= 1
	}
}
