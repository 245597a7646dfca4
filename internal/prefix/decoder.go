// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"io"

	"github.com/dsnet/huffman/internal/errors"
)

// decNode is a node in the decoding tree. A child value of 0 means that the
// branch is absent (the root is never a child), a positive value is the index
// of another decNode, and a negative value v is a leaf for symbol -v-1.
type decNode struct {
	next [2]int32
}

// Decoder walks a binary tree rebuilt from a canonical set of prefix codes.
// Nodes are kept in a flat arena addressed by index.
type Decoder struct {
	nodes   []decNode
	numSyms int
}

// Init initializes Decoder according to the codes provided.
// The codes must be prefix-free.
func (pd *Decoder) Init(codes PrefixCodes) error {
	pd.nodes = append(pd.nodes[:0], decNode{})
	pd.numSyms = len(codes)
	for _, c := range codes {
		if c.Len == 0 || c.Len > MaxCodeLen || c.Sym >= NumSymbols {
			return errorf(errors.Format, "invalid code for symbol %d", c.Sym)
		}
		var idx int32
		for i := c.Len; i > 0; i-- {
			bit := (c.Val >> (i - 1)) & 1
			v := pd.nodes[idx].next[bit]
			if i == 1 {
				if v != 0 {
					return ErrInvalidCode
				}
				pd.nodes[idx].next[bit] = -int32(c.Sym) - 1
				break
			}
			switch {
			case v < 0:
				return ErrInvalidCode
			case v == 0:
				pd.nodes = append(pd.nodes, decNode{})
				v = int32(len(pd.nodes) - 1)
				pd.nodes[idx].next[bit] = v
			}
			idx = v
		}
	}
	return nil
}

// NumSymbols reports the number of symbols the Decoder was initialized with.
func (pd *Decoder) NumSymbols() int { return pd.numSyms }

// ReadSymbol reads bits one at a time from pr until a leaf is reached.
//
// It returns io.EOF if the stream ended before the first bit,
// io.ErrUnexpectedEOF if the stream ended within a code, and ErrInvalidCode
// if the bits lead to a branch that has no symbol.
func (pd *Decoder) ReadSymbol(pr *Reader) (uint32, error) {
	var idx int32
	for n := 0; ; n++ {
		bit, err := pr.ReadBit()
		if err != nil {
			if err == io.EOF && n > 0 {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		v := pd.nodes[idx].next[bit]
		switch {
		case v < 0:
			return uint32(-v - 1), nil
		case v == 0:
			return 0, ErrInvalidCode
		}
		idx = v
	}
}
