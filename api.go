// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a two-pass file format that compresses a byte
// stream with a canonical Huffman code.
//
// A packed stream consists of a header followed by a bit-packed payload.
// The header holds a magic identifier, the format version, the length of the
// original data, and the code length of every byte value. The payload is the
// concatenation of the canonical code of each input byte, packed starting with
// the most-significant bit of each byte and padded with zero bits.
//
// Since byte frequencies must be known before the header can be written,
// Pack requires an input that can be rewound, while Unpack and Reader
// consume their input in a single forward pass.
package huffman

import "github.com/dsnet/huffman/internal/errors"

// Error is the error type returned by all operations in this package.
// The IsX predicates report which kind of failure it is.
type Error = errors.Error

// IsIOFailure reports whether err is a failure reading from or writing to
// one of the supplied channels. The underlying cause is available through
// the standard errors.Unwrap function.
func IsIOFailure(err error) bool { return errors.IsIO(err) }

// IsFormatError reports whether err is due to an invalid header or payload,
// such as a bad magic, an unknown version, or an invalid code length table.
func IsFormatError(err error) bool { return errors.IsFormat(err) }

// IsTruncated reports whether err is due to the input ending before the
// declared length of data could be decoded.
func IsTruncated(err error) bool { return errors.IsTruncated(err) }

// IsInvalid reports whether err is due to a misuse of the API, such as a nil
// argument or an input that cannot be represented in this format.
func IsInvalid(err error) bool { return errors.IsInvalid(err) }

const pkgName = "huffman"

func errorf(c int, msg string) error {
	return errors.Error{Code: c, Pkg: pkgName, Msg: msg}
}

// errWrap classifies an error from the input of a decoder, where a premature
// io.EOF means that the data is truncated.
func errWrap(err error) error {
	return errors.Wrap(pkgName, err)
}

// ioError classifies any error as an IO failure unless it is already an Error.
func ioError(err error) error {
	switch err.(type) {
	case nil, Error:
		return err
	}
	return errors.Error{Code: errors.IO, Pkg: pkgName, Err: err}
}
