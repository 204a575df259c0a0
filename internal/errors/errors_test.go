// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package errors

import (
	"errors"
	"io"
	"testing"
)

func TestError(t *testing.T) {
	var vectors = []struct {
		err  error
		want string
	}{
		{Error{}, "unknown error"},
		{Error{Code: Invalid, Pkg: "bwt"}, "bwt: invalid input"},
		{New("bwt", Corrupted, "truncated frame header"), "bwt: malformed stream: truncated frame header"},
		{Error{Msg: "oops"}, "unknown error: oops"},
	}
	for i, v := range vectors {
		if got := v.err.Error(); got != v.want {
			t.Errorf("test %d, mismatching string:\ngot  %q\nwant %q", i, got, v.want)
		}
	}
}

func TestIs(t *testing.T) {
	sentinel := Error{Code: OutOfRange, Pkg: "bwt"}
	if err := New("bwt", OutOfRange, "index 9"); !errors.Is(err, sentinel) {
		t.Errorf("errors.Is(%v, %v) = false, want true", err, sentinel)
	}
	if err := New("bwt", Invalid, ""); errors.Is(err, sentinel) {
		t.Errorf("errors.Is(%v, %v) = true, want false", err, sentinel)
	}
	if errors.Is(io.EOF, sentinel) {
		t.Errorf("errors.Is(io.EOF, %v) = true, want false", sentinel)
	}
}

func TestRecover(t *testing.T) {
	want := New("bwt", Corrupted, "bad")
	got := func() (err error) {
		defer Recover(&err)
		Panic(want)
		return nil
	}()
	if got != want {
		t.Errorf("mismatching error: got %v, want %v", got, want)
	}

	defer func() {
		if ex := recover(); ex == nil {
			t.Errorf("runtime error was not re-panicked")
		}
	}()
	func() (err error) {
		defer Recover(&err)
		var s []int
		_ = s[len(s)]
		return nil
	}()
}
