// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/marwlod/bwt/internal/testutil"
)

func TestReadFrame(t *testing.T) {
	errFuncs := map[string]func(error) bool{
		"IsInvalid":   func(err error) bool { return errors.Is(err, ErrInvalidInput) },
		"IsMalformed": func(err error) bool { return errors.Is(err, ErrMalformedStream) },
	}
	var vectors = []struct {
		desc   string
		input  []byte
		ptr    int
		output string
		errf   string
	}{{
		desc:  "empty stream",
		input: nil,
		errf:  "IsMalformed",
	}, {
		desc:  "truncated header",
		input: testutil.MustDecodeBitGen(">>> > H24:000000"),
		errf:  "IsMalformed",
	}, {
		desc:  "header without data",
		input: testutil.MustDecodeBitGen(">>> > H32:00000000"),
		errf:  "IsInvalid",
	}, {
		desc:  "index past the last column",
		input: testutil.MustDecodeBitGen(">>> > H32:00000004 X:41424344"),
		errf:  "IsInvalid",
	}, {
		desc:  "huge index",
		input: testutil.MustDecodeBitGen(">>> > H32:ffffffff X:41"),
		errf:  "IsInvalid",
	}, {
		desc:   "single byte",
		input:  testutil.MustDecodeBitGen(">>> > H32:00000000 X:7a"),
		ptr:    0,
		output: "z",
	}, {
		desc: "abracadabra",
		input: testutil.MustDecodeBitGen(`>>> >
			H32:00000003              # firstIndex
			X:415244215243414141414242 # "ARD!RCAAAABB"
		`),
		ptr:    3,
		output: "ARD!RCAAAABB",
	}, {
		desc:   "index in the last row",
		input:  testutil.MustDecodeBitGen(">>> > H32:00000003 X:61*4"),
		ptr:    3,
		output: "aaaa",
	}}

	for i, v := range vectors {
		ptr, last, err := ReadFrame(bytes.NewReader(v.input))
		if v.errf != "" {
			if !errFuncs[v.errf](err) {
				t.Errorf("test %d (%s), mismatching error:\ngot %v\nwant %s(err) == true", i, v.desc, err, v.errf)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d (%s), unexpected error: %v", i, v.desc, err)
			continue
		}
		if ptr != v.ptr {
			t.Errorf("test %d (%s), pointer mismatch: got %d, want %d", i, v.desc, ptr, v.ptr)
		}
		if string(last) != v.output {
			t.Errorf("test %d (%s), output mismatch:\ngot  %q\nwant %q", i, v.desc, last, v.output)
		}
	}
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, 3, []byte("ARD!RCAAAABB")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := testutil.MustDecodeHex("00000003" + "415244215243414141414242")
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("output mismatch:\ngot  %x\nwant %x", buf.Bytes(), want)
	}

	for _, v := range []struct {
		ptr  int
		last string
	}{{0, ""}, {-1, "a"}, {1, "a"}} {
		if err := WriteFrame(io.Discard, v.ptr, []byte(v.last)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("WriteFrame(%d, %q), error mismatch: got %v, want %v", v.ptr, v.last, err, ErrInvalidInput)
		}
	}
}

func TestFrameIOErrors(t *testing.T) {
	errBroken := errors.New("broken pipe")
	frame := testutil.MustDecodeHex("00000003" + "415244215243414141414242")

	// The underlying error surfaces as is once the header has been read.
	br := &testutil.BuggyReader{R: bytes.NewReader(frame), N: 6, Err: errBroken}
	if _, _, err := ReadFrame(br); err != errBroken {
		t.Errorf("read error mismatch: got %v, want %v", err, errBroken)
	}

	bw := &testutil.BuggyWriter{W: io.Discard, N: 5, Err: errBroken}
	if err := WriteFrame(bw, 3, []byte("ARD!RCAAAABB")); err != errBroken {
		t.Errorf("write error mismatch: got %v, want %v", err, errBroken)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	rand := testutil.NewRand(5)
	for i, b := range [][]byte{
		[]byte("a"),
		[]byte("ABRACADABRA!"),
		rand.Bytes(10000),
	} {
		ptr, last, err := Forward(b)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		var buf bytes.Buffer
		if err := WriteFrame(&buf, ptr, last); err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if buf.Len() != 4+len(b) {
			t.Errorf("test %d, frame length mismatch: got %d, want %d", i, buf.Len(), 4+len(b))
		}
		ptr2, last2, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		got, err := Inverse(ptr2, last2)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if !bytes.Equal(got, b) {
			t.Errorf("test %d, round trip mismatch", i)
		}
	}
}
