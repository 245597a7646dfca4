// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"io"

	"github.com/dsnet/huffman/internal/errors"
	"github.com/icza/bitio"
)

// Writer implements a prefix encoder that packs bits MSB-first into bytes.
// The first error encountered is sticky and returned by all later calls.
type Writer struct {
	wr   *bitio.Writer
	bits int64 // Total number of bits written
	err  error
}

// Init initializes the bit Writer to write to w. If w is not an
// io.ByteWriter, then writes are internally buffered until Flush.
func (pw *Writer) Init(w io.Writer) {
	*pw = Writer{wr: bitio.NewWriter(w)}
}

// BitsWritten reports the total number of bits issued to any Write method.
func (pw *Writer) BitsWritten() int64 {
	return pw.bits
}

// WriteBits writes the lower n bits of v, starting with bit n-1.
func (pw *Writer) WriteBits(v uint64, n uint) error {
	if pw.err != nil {
		return pw.err
	}
	if n > MaxCodeLen {
		return errorf(errors.Invalid, "cannot write %d bits at once", n)
	}
	if n < 64 {
		v &= 1<<n - 1
	}
	if err := pw.wr.WriteBits(v, uint8(n)); err != nil {
		pw.err = err
		return err
	}
	pw.bits += int64(n)
	return nil
}

// WriteCode writes the prefix value of pc.
func (pw *Writer) WriteCode(pc PrefixCode) error {
	return pw.WriteBits(pc.Val, uint(pc.Len))
}

// Flush pads the last partial byte with zero bits and writes out all
// internally buffered bytes. The underlying writer is not closed, and the
// Writer must be re-initialized before further use.
func (pw *Writer) Flush() error {
	if pw.err != nil {
		return pw.err
	}
	pw.err = pw.wr.Close()
	return pw.err
}
