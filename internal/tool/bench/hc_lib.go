// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_hc_lib
// +build !no_hc_lib

package bench

import (
	"io"

	"github.com/dsnet/golib/memfile"
	"github.com/dsnet/huffman"
)

// packWriter buffers all writes since Pack must read its input twice.
// The level is ignored.
type packWriter struct {
	w  io.Writer
	mf *memfile.File
}

func (pw *packWriter) Write(buf []byte) (int, error) { return pw.mf.Write(buf) }

func (pw *packWriter) Close() error {
	if _, err := pw.mf.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err := huffman.Pack(pw.w, pw.mf)
	return err
}

func init() {
	RegisterEncoder(FormatHuffman, "hc",
		func(w io.Writer, lvl int) io.WriteCloser {
			return &packWriter{w: w, mf: memfile.New(nil)}
		})
	RegisterDecoder(FormatHuffman, "hc",
		func(r io.Reader) io.ReadCloser {
			zr, err := huffman.NewReader(r, nil)
			if err != nil {
				panic(err)
			}
			return zr
		})
}
