// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"fmt"
	"strconv"
	"strings"
)

// bitString formats the low n bits of v, most-significant bit first.
func bitString(v uint64, n uint32) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", int(n), v)
}

// alignRight pads s with leading spaces to a width of m.
func alignRight(s string, m int) string { return fmt.Sprintf("%*s", m, s) }

func decimal(n uint64) string { return strconv.FormatUint(n, 10) }

// String renders one code per line with the symbol, the code bits and a
// histogram of the counts.
func (pc PrefixCodes) String() string {
	var maxSym, maxCnt uint64
	var maxLen uint32
	for _, c := range pc {
		if maxSym < uint64(c.Sym) {
			maxSym = uint64(c.Sym)
		}
		if maxLen < c.Len {
			maxLen = c.Len
		}
		if maxCnt < c.Cnt {
			maxCnt = c.Cnt
		}
	}
	symWidth := len(decimal(maxSym))
	cntWidth := len(decimal(maxCnt))

	var ss []string
	ss = append(ss, "{")
	for _, c := range pc {
		var cntStr string
		if maxCnt > 0 {
			cnt := int(32*float64(c.Cnt)/float64(maxCnt) + 0.5)
			cntStr = fmt.Sprintf("%s |%s",
				alignRight(decimal(c.Cnt), cntWidth),
				strings.Repeat("#", cnt),
			)
		}
		ss = append(ss, fmt.Sprintf("\t%s:  %s,  %s",
			alignRight(decimal(uint64(c.Sym)), symWidth),
			alignRight(bitString(c.Val, c.Len), int(maxLen)),
			cntStr,
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

// String renders the tree in a parenthesized form, where a leaf is its
// symbol and an internal node is the pair of its children.
func (n *Node) String() string {
	switch {
	case n == nil:
		return "()"
	case n.IsLeaf():
		return fmt.Sprintf("%d", n.Sym)
	default:
		return "(" + n.Left.String() + " " + n.Right.String() + ")"
	}
}
