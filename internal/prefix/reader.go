// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"io"

	"github.com/icza/bitio"
)

// Reader implements a prefix decoder that reads bits MSB-first from bytes.
// If the underlying reader is an io.ByteReader, it is used directly,
// otherwise it is wrapped with a buffer that may read ahead.
type Reader struct {
	rd   *bitio.Reader
	bits int64 // Total number of bits read
}

func (pr *Reader) Init(r io.Reader) {
	*pr = Reader{rd: bitio.NewReader(r)}
}

// BitsRead reports the total number of bits consumed.
func (pr *Reader) BitsRead() int64 {
	return pr.bits
}

// ReadBit reads a single bit. It returns io.EOF only if the underlying
// reader has no more bytes and no bits are pending.
func (pr *Reader) ReadBit() (uint, error) {
	b, err := pr.rd.ReadBool()
	if err != nil {
		return 0, err
	}
	pr.bits++
	if b {
		return 1, nil
	}
	return 0, nil
}

// ReadBits reads n bits, where the first bit read becomes bit n-1 of the
// result. It returns io.EOF if no bits could be read at all and
// io.ErrUnexpectedEOF if the stream ended partway.
func (pr *Reader) ReadBits(n uint) (v uint64, err error) {
	for i := uint(0); i < n; i++ {
		b, err := pr.ReadBit()
		if err != nil {
			if err == io.EOF && i > 0 {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		v = v<<1 | uint64(b)
	}
	return v, nil
}
