// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "github.com/dsnet/huffman/internal/errors"

// Encoder maps each symbol directly to its prefix code.
type Encoder struct {
	codes [NumSymbols]PrefixCode
}

// Init initializes Encoder according to the codes provided.
// Symbols not present in codes have no code and cannot be written.
func (pe *Encoder) Init(codes PrefixCodes) error {
	pe.codes = [NumSymbols]PrefixCode{}
	for _, c := range codes {
		if c.Sym >= NumSymbols || c.Len == 0 || c.Len > MaxCodeLen {
			return errorf(errors.Invalid, "invalid code for symbol %d", c.Sym)
		}
		pe.codes[c.Sym] = c
	}
	return nil
}

// Code returns the prefix code for sym and whether it exists.
func (pe *Encoder) Code(sym uint32) (PrefixCode, bool) {
	if sym >= NumSymbols || pe.codes[sym].Len == 0 {
		return PrefixCode{}, false
	}
	return pe.codes[sym], true
}

// WriteSymbol writes the prefix code for sym to pw.
func (pe *Encoder) WriteSymbol(pw *Writer, sym uint32) error {
	c, ok := pe.Code(sym)
	if !ok {
		return errorf(errors.Invalid, "no code for symbol %d", sym)
	}
	return pw.WriteCode(c)
}
