// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dsnet/huffman/internal"
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

var errClosed error = errors.Error{Code: errors.Invalid, Pkg: pkgName, Msg: "reader is closed"}

// Unpack decompresses r into w and reports the number of bytes written.
// The input is consumed in a single forward pass.
func Unpack(w io.Writer, r io.Reader) (n int64, err error) {
	if w == nil {
		return 0, errorf(errors.Invalid, "nil writer")
	}
	zr, err := NewReader(r, nil)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	buf := make([]byte, 32<<10)
	for {
		cnt, rerr := zr.Read(buf)
		if cnt > 0 {
			wn, werr := w.Write(buf[:cnt])
			n += int64(wn)
			if werr == nil && wn < cnt {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				return n, ioError(werr)
			}
		}
		switch rerr {
		case nil:
		case io.EOF:
			return n, nil
		default:
			return n, rerr
		}
	}
}

type ReaderConfig struct {
	// MaxSize is the largest original length that is accepted.
	// A header that declares more is rejected as a format error.
	// If zero, there is no limit.
	MaxSize uint64

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Reader decompresses a packed stream. Since the length of the original data
// is known from the header, the Reader never consumes more of the payload
// than is needed, although an underlying io.Reader that is not an
// io.ByteReader is buffered and may be read ahead.
type Reader struct {
	OutputOffset int64 // Total number of bytes decoded

	conf   ReaderConfig
	hdr    Header
	remain uint64 // Number of bytes left to decode
	rd     prefix.Reader
	pd     prefix.Decoder
	err    error
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// NewReader reads the header from r and returns a Reader that decodes the
// payload that follows. If conf is nil, the defaults are used.
func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := new(Reader)
	if conf != nil {
		zr.conf = *conf
	}
	if err := zr.Reset(r); err != nil {
		return nil, err
	}
	return zr, nil
}

// Reset discards the Reader's state and reads a new header from r.
func (zr *Reader) Reset(r io.Reader) error {
	*zr = Reader{conf: zr.conf, pd: zr.pd}
	if r == nil {
		zr.err = errorf(errors.Invalid, "nil reader")
		return zr.err
	}
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	hdr, err := ReadHeader(br)
	if err != nil {
		zr.err = err
		return err
	}
	if max := zr.conf.MaxSize; max > 0 && hdr.Size > max {
		zr.err = errorf(errors.Format, fmt.Sprintf("declared length %d exceeds limit %d", hdr.Size, max))
		return zr.err
	}
	codes, err := hdr.codes()
	if err == nil {
		err = zr.pd.Init(codes)
	}
	if err != nil {
		zr.err = err
		return err
	}
	zr.hdr = hdr
	zr.remain = hdr.Size
	zr.rd.Init(br)
	return nil
}

// Header returns the header that was read.
func (zr *Reader) Header() Header { return zr.hdr }

func (zr *Reader) Read(buf []byte) (int, error) {
	if zr.err != nil {
		return 0, zr.err
	}
	if zr.remain == 0 {
		zr.err = io.EOF
		return 0, io.EOF
	}
	if uint64(len(buf)) > zr.remain {
		buf = buf[:zr.remain]
	}
	n, err := zr.decode(buf)
	zr.OutputOffset += int64(n)
	zr.remain -= uint64(n)
	if internal.Debug && uint64(zr.OutputOffset)+zr.remain != zr.hdr.Size {
		panic("huffman: output accounting mismatch")
	}
	if err != nil {
		zr.err = err
	}
	return n, err
}

// decode fills buf with decoded bytes.
func (zr *Reader) decode(buf []byte) (n int, err error) {
	defer errors.Recover(&err)
	for n < len(buf) {
		sym, rerr := zr.pd.ReadSymbol(&zr.rd)
		if rerr != nil {
			errors.Panic(errWrap(rerr))
		}
		buf[n] = byte(sym)
		n++
	}
	return n, nil
}

// Close ends the decompression. It reports any error encountered other than
// reaching the end of the data.
func (zr *Reader) Close() error {
	if zr.err == errClosed {
		return nil
	}
	err := zr.err
	zr.err = errClosed
	if err == io.EOF {
		return nil
	}
	return err
}
