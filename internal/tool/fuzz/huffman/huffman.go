// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package huffman

import (
	"bytes"
	"io"

	"github.com/dsnet/huffman"
)

func Fuzz(data []byte) int {
	_, ok := testDecoder(data)
	testRoundTrip(data)
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoder tests that the input can be handled by the decoder. Any failure
// must be reported as a format or truncation error.
func testDecoder(data []byte) ([]byte, bool) {
	var bb bytes.Buffer
	n, err := huffman.Unpack(&bb, bytes.NewReader(data))
	if n != int64(bb.Len()) {
		panic("mismatching count")
	}
	switch {
	case err == nil:
		return bb.Bytes(), true
	case huffman.IsFormatError(err), huffman.IsTruncated(err):
		return nil, false
	default:
		panic(err)
	}
}

// testRoundTrip packs the input and checks that unpacking the output
// reproduces it exactly.
func testRoundTrip(data []byte) {
	bb := new(bytes.Buffer)
	n, err := huffman.Pack(bb, bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	if n != int64(bb.Len()) {
		panic("mismatching count")
	}
	packed := bb.Bytes()

	b, ok := testDecoder(packed)
	if !ok {
		panic("decoder error")
	}
	if !bytes.Equal(b, data) {
		panic("mismatching bytes")
	}

	// A prefix of the output must be rejected.
	if len(packed) > 0 {
		cut := len(packed) / 2
		_, err := huffman.Unpack(io.Discard, bytes.NewReader(packed[:cut]))
		if !huffman.IsTruncated(err) {
			panic("expected truncation error")
		}
	}
}
