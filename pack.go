// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bufio"
	"io"

	"github.com/dsnet/huffman/internal"
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

var errChanged error = errors.Error{Code: errors.IO, Pkg: pkgName, Msg: "input changed between passes"}

// Pack compresses all of r into w and reports the number of bytes written.
//
// The input is read twice: once to count the byte frequencies and again,
// after seeking back to the start, to encode each byte. The second pass must
// observe exactly the same data as the first. The writer is flushed of all
// buffered data, but is not closed.
func Pack(w io.Writer, r io.ReadSeeker) (int64, error) {
	if w == nil || r == nil {
		return 0, errorf(errors.Invalid, "nil reader or writer")
	}

	var ft FrequencyTable
	if _, err := ft.ReadFrom(r); err != nil {
		return 0, ioError(err)
	}

	codes := prefix.BuildTree(ft[:]).Lengths()
	if codes.MaxLen() > prefix.MaxCodeLen {
		return 0, errorf(errors.Invalid, "code length exceeds 64 bits")
	}
	if err := prefix.GeneratePrefixes(codes); err != nil {
		return 0, errors.Error{Code: errors.Internal, Pkg: pkgName, Err: err}
	}
	hdr := Header{Version: Version, Size: ft.Total(), Lengths: codes.Lengths()}

	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	if _, err := hdr.WriteTo(bw); err != nil {
		return cw.n, err
	}
	if hdr.Size > 0 {
		if err := encode(bw, r, codes, hdr.Size); err != nil {
			return cw.n, err
		}
	}
	if err := bw.Flush(); err != nil {
		return cw.n, ioError(err)
	}
	return cw.n, nil
}

// encode rewinds r and writes the payload for exactly size bytes.
func encode(w io.Writer, r io.ReadSeeker, codes prefix.PrefixCodes, size uint64) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return ioError(err)
	}

	var pe prefix.Encoder
	if err := pe.Init(codes); err != nil {
		return err
	}
	var pw prefix.Writer
	pw.Init(w)

	var cnt uint64
	br := bufio.NewReader(r)
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ioError(err)
		}
		code, ok := pe.Code(uint32(c))
		if !ok || cnt == size {
			return errChanged
		}
		if err := pw.WriteCode(code); err != nil {
			return ioError(err)
		}
		cnt++
	}
	if cnt != size {
		return errChanged
	}
	if internal.Debug {
		var want int64
		for _, c := range codes {
			want += int64(c.Len) * int64(c.Cnt)
		}
		if pw.BitsWritten() != want {
			panic("huffman: payload length mismatch")
		}
	}
	return ioError(pw.Flush())
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	cw.n += int64(n)
	return n, err
}
