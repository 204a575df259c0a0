// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate errors raised by the
// transform packages.
package errors

import "runtime"

// Error codes. The public packages expose one sentinel per code; two errors
// match under errors.Is when their codes match.
const (
	Unknown = iota
	Internal
	Invalid
	Corrupted
	OutOfRange
)

var codeMap = map[int]string{
	Unknown:    "unknown error",
	Internal:   "internal error",
	Invalid:    "invalid input",
	Corrupted:  "malformed stream",
	OutOfRange: "index out of range",
}

// Error is the error type returned by the transform packages.
type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	if len(ss) == 0 {
		return codeMap[Unknown]
	}
	s := ss[0]
	for _, t := range ss[1:] {
		s += ": " + t
	}
	return s
}

// Is reports whether target is an Error carrying the same code.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Code == e.Code
}

func (e Error) IsInternal() bool   { return e.Code == Internal }
func (e Error) IsInvalid() bool    { return e.Code == Invalid }
func (e Error) IsCorrupted() bool  { return e.Code == Corrupted }
func (e Error) IsOutOfRange() bool { return e.Code == OutOfRange }

// New returns an Error for the given package and code.
func New(pkg string, code int, msg string) error {
	return Error{Code: code, Pkg: pkg, Msg: msg}
}

// Panic raises err so that a deferred Recover at the API boundary returns it.
func Panic(err error) {
	panic(err)
}

// Recover recovers panics raised with Panic and stores the error in err.
// Runtime errors and non-error values are re-panicked.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
