// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements bit readers and writers that use prefix encoding.
//
// Codes are emitted most-significant bit first. A PrefixCode stores its bits
// right-aligned in Val, such that the bit at position Len-1 is read or
// written first.
package prefix

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/dsnet/huffman/internal/errors"
)

const (
	// NumSymbols is the size of the alphabet, which is every byte value.
	NumSymbols = 256

	// MaxCodeLen is the longest code that can be represented.
	MaxCodeLen = 64
)

var ErrInvalidCode error = errors.Error{Code: errors.Format, Pkg: "huffman", Msg: "invalid prefix code"}

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "huffman", Msg: fmt.Sprintf(f, a...)}
}

type PrefixCode struct {
	Sym uint32 // The symbol being mapped
	Cnt uint64 // The number times this symbol is used
	Len uint32 // Bit-length of the prefix code
	Val uint64 // Value of the prefix code (must be in 0..(1<<Len)-1)
}

type PrefixCodes []PrefixCode

func (pc PrefixCodes) SortBySymbol() {
	sort.Slice(pc, func(i, j int) bool { return pc[i].Sym < pc[j].Sym })
}

// SortByLength sorts the codes by length, breaking ties by symbol.
// This is the order in which canonical values are assigned.
func (pc PrefixCodes) SortByLength() {
	sort.Slice(pc, func(i, j int) bool {
		if pc[i].Len != pc[j].Len {
			return pc[i].Len < pc[j].Len
		}
		return pc[i].Sym < pc[j].Sym
	})
}

// MaxLen reports the length of the longest code.
func (pc PrefixCodes) MaxLen() (n uint32) {
	for _, c := range pc {
		if c.Len > n {
			n = c.Len
		}
	}
	return n
}

// Lengths returns the code-length table indexed by symbol.
func (pc PrefixCodes) Lengths() (lens [NumSymbols]uint8) {
	for _, c := range pc {
		lens[c.Sym] = uint8(c.Len)
	}
	return lens
}

// CodesFromLengths returns the codes for every symbol with a non-zero length
// in lens, sorted by symbol. The values are not assigned.
func CodesFromLengths(lens [NumSymbols]uint8) (pc PrefixCodes) {
	for sym, n := range lens {
		if n > 0 {
			pc = append(pc, PrefixCode{Sym: uint32(sym), Len: uint32(n)})
		}
	}
	return pc
}

// ValidateLengths reports whether the code lengths can be assigned to form
// a complete prefix code. The only permitted incomplete code is the one with
// a single symbol of length 1.
func ValidateLengths(codes PrefixCodes) error {
	var seen [NumSymbols]bool
	for _, c := range codes {
		if c.Sym >= NumSymbols {
			return errorf(errors.Format, "symbol %d out of range", c.Sym)
		}
		if seen[c.Sym] {
			return errorf(errors.Format, "duplicate symbol %d", c.Sym)
		}
		seen[c.Sym] = true
		if c.Len == 0 || c.Len > MaxCodeLen {
			return errorf(errors.Format, "invalid code length %d for symbol %d", c.Len, c.Sym)
		}
	}
	switch len(codes) {
	case 0:
		return nil
	case 1:
		if codes[0].Len != 1 {
			return errorf(errors.Format, "single symbol with code length %d", codes[0].Len)
		}
		return nil
	}

	// The Kraft sum of a complete code is exactly 2^MaxCodeLen, so it is
	// accumulated as a 128-bit value.
	var hi, lo, carry uint64
	for _, c := range codes {
		lo, carry = bits.Add64(lo, uint64(1)<<(MaxCodeLen-c.Len), 0)
		hi += carry
	}
	switch {
	case hi > 1 || (hi == 1 && lo > 0):
		return errorf(errors.Format, "over-subscribed prefix code")
	case hi < 1:
		return errorf(errors.Format, "incomplete prefix code")
	}
	return nil
}

// GeneratePrefixes assigns the canonical prefix value to each code based on
// the lengths alone. Codes of equal length receive consecutive values in
// ascending symbol order, and shorter codes precede longer ones.
//
// The codes are sorted by symbol upon return.
func GeneratePrefixes(codes PrefixCodes) error {
	if err := ValidateLengths(codes); err != nil {
		return err
	}
	codes.SortBySymbol()

	var counts [MaxCodeLen + 1]uint64
	for _, c := range codes {
		counts[c.Len]++
	}
	var nexts [MaxCodeLen + 1]uint64
	var code uint64
	for i := 1; i <= MaxCodeLen; i++ {
		code = (code + counts[i-1]) << 1
		nexts[i] = code
	}
	for i, c := range codes {
		codes[i].Val = nexts[c.Len]
		nexts[c.Len]++
	}
	return nil
}
