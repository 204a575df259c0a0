// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/marwlod/bwt/mtf"
	"github.com/marwlod/bwt/pipeline"
)

// Each back-end format is registered under three codec names:
//	raw  the back-end compressor alone
//	mtf  move-to-front recoding, then the back-end
//	bwt  the full transform pipeline, then the back-end
var stages = []struct {
	name string
	enc  func([]byte) ([]byte, error)
	dec  func([]byte) ([]byte, error)
}{
	{name: "raw"},
	{
		name: "mtf",
		enc:  func(b []byte) ([]byte, error) { return mtf.Encode(b), nil },
		dec:  func(b []byte) ([]byte, error) { return mtf.Decode(b), nil },
	},
	{
		name: "bwt",
		enc:  pipeline.Encode,
		dec:  pipeline.Decode,
	},
}

var backends = map[Format]struct {
	enc Encoder
	dec Decoder
}{
	FormatFlate: {
		enc: func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		},
		dec: func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		},
	},
	FormatZstd: {
		enc: func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)))
			if err != nil {
				panic(err)
			}
			return zw
		},
		dec: func(r io.Reader) io.ReadCloser {
			zr, err := zstd.NewReader(r)
			if err != nil {
				panic(err)
			}
			return zr.IOReadCloser()
		},
	},
	FormatXZ: {
		enc: func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		},
		dec: func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				return io.NopCloser(&errReader{err})
			}
			return io.NopCloser(zr)
		},
	},
}

func init() {
	for ft, be := range backends {
		be := be
		for _, st := range stages {
			st := st
			if st.enc == nil {
				RegisterEncoder(ft, st.name, be.enc)
				RegisterDecoder(ft, st.name, be.dec)
				continue
			}
			RegisterEncoder(ft, st.name, func(w io.Writer, lvl int) io.WriteCloser {
				return &blockWriter{zw: be.enc(w, lvl), enc: st.enc}
			})
			RegisterDecoder(ft, st.name, func(r io.Reader) io.ReadCloser {
				return &blockReader{zr: be.dec(r), dec: st.dec}
			})
		}
	}
}

// blockWriter buffers the whole input as a single block and hands the
// pre-processed block to the back-end on Close.
type blockWriter struct {
	buf bytes.Buffer
	zw  io.WriteCloser
	enc func([]byte) ([]byte, error)
}

func (bw *blockWriter) Write(p []byte) (int, error) {
	return bw.buf.Write(p)
}

func (bw *blockWriter) Close() error {
	if bw.buf.Len() > 0 {
		out, err := bw.enc(bw.buf.Bytes())
		if err != nil {
			return err
		}
		if _, err := bw.zw.Write(out); err != nil {
			return err
		}
	}
	return bw.zw.Close()
}

// blockReader decompresses the whole back-end stream on the first Read and
// serves the reconstructed block.
type blockReader struct {
	zr   io.ReadCloser
	dec  func([]byte) ([]byte, error)
	rd   *bytes.Reader
	err  error
	done bool
}

func (br *blockReader) Read(p []byte) (int, error) {
	if !br.done {
		br.done = true
		var data []byte
		if data, br.err = io.ReadAll(br.zr); br.err == nil {
			var block []byte
			if len(data) > 0 {
				block, br.err = br.dec(data)
			}
			br.rd = bytes.NewReader(block)
		}
	}
	if br.err != nil {
		return 0, br.err
	}
	return br.rd.Read(p)
}

func (br *blockReader) Close() error {
	return br.zr.Close()
}

type errReader struct{ err error }

func (er *errReader) Read([]byte) (int, error) { return 0, er.err }
