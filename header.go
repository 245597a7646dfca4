// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

const (
	hdrMagic = "HUFC"

	// Version is the only format version that is produced and accepted.
	Version = 1
)

// The code length table is stored either densely as one length per byte
// value, or sparsely as a list of (byte value, length) pairs.
const (
	tableDense  = 0
	tableSparse = 1
)

// Header is the container header that precedes the payload.
//
//	magic    [4]byte    "HUFC"
//	version  uint8
//	size     uint64     big-endian
//	mode     uint8      0 (dense) or 1 (sparse)
//	dense:   [256]uint8
//	sparse:  count uint8, then count pairs of (symbol, length)
type Header struct {
	Version uint8
	Size    uint64     // Length of the original data in bytes
	Lengths [256]uint8 // Code length of each byte value, or 0 if absent
}

// WriteTo writes the serialized header to w. The smaller of the two table
// modes is chosen.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.appendBinary(nil))
	return int64(n), ioError(err)
}

func (h *Header) appendBinary(b []byte) []byte {
	b = append(b, hdrMagic...)
	b = append(b, h.Version)
	b = binary.BigEndian.AppendUint64(b, h.Size)

	var cnt int
	for _, n := range h.Lengths {
		if n > 0 {
			cnt++
		}
	}
	if 1+2*cnt < len(h.Lengths) {
		b = append(b, tableSparse, byte(cnt))
		for sym, n := range h.Lengths {
			if n > 0 {
				b = append(b, byte(sym), n)
			}
		}
	} else {
		b = append(b, tableDense)
		b = append(b, h.Lengths[:]...)
	}
	return b
}

// codes reconstructs the canonical prefix codes purely from the lengths.
func (h *Header) codes() (prefix.PrefixCodes, error) {
	codes := prefix.CodesFromLengths(h.Lengths)
	if err := prefix.GeneratePrefixes(codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// ReadHeader reads and validates a header from r.
//
// A stream that does not begin with the magic or that has an unknown version
// is rejected with a format error before anything else is read. A stream that
// ends within the header is reported as truncated.
func ReadHeader(r io.Reader) (h Header, err error) {
	defer errors.Recover(&err)
	hr := headerReader{r: r}

	var magic [len(hdrMagic)]byte
	cnt, err := io.ReadFull(r, magic[:])
	if !strings.HasPrefix(hdrMagic, string(magic[:cnt])) {
		panicf(errors.Format, "invalid magic %q", magic[:cnt])
	}
	if err != nil {
		errors.Panic(errWrap(err))
	}
	if h.Version = hr.readByte(); h.Version != Version {
		panicf(errors.Format, "unsupported version %d", h.Version)
	}
	h.Size = binary.BigEndian.Uint64(hr.read(8))

	switch mode := hr.readByte(); mode {
	case tableDense:
		copy(h.Lengths[:], hr.read(len(h.Lengths)))
	case tableSparse:
		last := -1
		for i, n := 0, int(hr.readByte()); i < n; i++ {
			sym, cnt := hr.readByte(), hr.readByte()
			if int(sym) <= last {
				panicf(errors.Format, "sparse table symbol %d out of order", sym)
			}
			if cnt == 0 {
				panicf(errors.Format, "sparse table symbol %d has no code", sym)
			}
			h.Lengths[sym] = cnt
			last = int(sym)
		}
	default:
		panicf(errors.Format, "unknown table mode %d", mode)
	}

	codes, err := h.codes()
	if err != nil {
		errors.Panic(err)
	}
	if (h.Size == 0) != (len(codes) == 0) {
		panicf(errors.Format, "%d symbols for %d bytes of data", len(codes), h.Size)
	}
	return h, nil
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, fmt.Sprintf(f, a...)))
}

type headerReader struct {
	r   io.Reader
	buf [256]byte
}

func (hr *headerReader) read(n int) []byte {
	if _, err := io.ReadFull(hr.r, hr.buf[:n]); err != nil {
		errors.Panic(errWrap(err))
	}
	return hr.buf[:n]
}

func (hr *headerReader) readByte() byte {
	return hr.read(1)[0]
}
