// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate Huffman codec errors.
//
// This package is an internal package and is not intended for use outside
// of this module. Callers should use the predicates in the root package.
package errors

import (
	"io"
	"runtime"
)

const (
	Unknown = iota
	Internal
	Invalid
	Format
	Truncated
	IO
)

var codeMap = map[int]string{
	Unknown:   "unknown error",
	Internal:  "internal error",
	Invalid:   "invalid argument",
	Format:    "invalid format",
	Truncated: "truncated data",
	IO:        "i/o failure",
}

type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
	Err  error  // Underlying cause (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	s := join(ss)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e Error) Unwrap() error { return e.Err }

func (e Error) HuffmanError()     {}
func (e Error) IsInternal() bool  { return e.Code == Internal }
func (e Error) IsInvalid() bool   { return e.Code == Invalid }
func (e Error) IsFormat() bool    { return e.Code == Format }
func (e Error) IsTruncated() bool { return e.Code == Truncated }
func (e Error) IsIO() bool        { return e.Code == IO }

func IsInternal(err error) bool  { return isCode(err, Internal) }
func IsInvalid(err error) bool   { return isCode(err, Invalid) }
func IsFormat(err error) bool    { return isCode(err, Format) }
func IsTruncated(err error) bool { return isCode(err, Truncated) }
func IsIO(err error) bool        { return isCode(err, IO) }

func isCode(err error, code int) bool {
	if cerr, ok := err.(Error); ok && cerr.Code == code {
		return true
	}
	return false
}

func join(ss []string) string {
	var s string
	for i, v := range ss {
		if i > 0 {
			s += ": "
		}
		s += v
	}
	return s
}

// Wrap classifies a raw error returned by an underlying channel.
// An io.EOF or io.ErrUnexpectedEOF becomes a Truncated error, while any other
// foreign error becomes an IO error that wraps the cause.
// Errors that are already of type Error are returned as is.
func Wrap(pkg string, err error) error {
	switch err.(type) {
	case nil:
		return nil
	case Error:
		return err
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return Error{Code: Truncated, Pkg: pkg, Msg: "unexpected end of stream"}
	}
	return Error{Code: IO, Pkg: pkg, Err: err}
}

// errWrap is used by Panic and Recover to ensure that only errors raised by
// Panic are recovered by Recover.
type errWrap struct{ e *error }

func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case errWrap:
		*err = *ex.e
	default:
		panic(ex)
	}
}

func Panic(err error) {
	panic(errWrap{&err})
}
