// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "container/heap"

// Node is a node of a Huffman tree. A leaf has no children, while an
// internal node always has both.
type Node struct {
	Sym    uint32 // Only valid for leaves
	Weight uint64 // Sum of all leaf weights under this node
	Left   *Node  // Reached with a 0 bit
	Right  *Node  // Reached with a 1 bit
}

func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// BuildTree builds a Huffman tree from the symbol counts, where counts[i]
// is the weight of symbol i. Symbols with a zero count are omitted.
//
// Nodes of equal weight are ordered by insertion, where the leaves are
// inserted in ascending symbol order and each internal node is inserted
// after all prior nodes. Thus, the tree is fully determined by counts.
//
// It returns nil if all counts are zero and a single leaf if only one count
// is non-zero. The sum of all counts must not overflow a uint64.
func BuildTree(counts []uint64) *Node {
	var h nodeHeap
	for sym, cnt := range counts {
		if cnt > 0 {
			h = append(h, heapNode{&Node{Sym: uint32(sym), Weight: cnt}, len(h)})
		}
	}
	if len(h) == 0 {
		return nil
	}
	heap.Init(&h)

	seq := len(h)
	for h.Len() > 1 {
		x := heap.Pop(&h).(heapNode)
		y := heap.Pop(&h).(heapNode)
		n := &Node{Weight: x.Weight + y.Weight, Left: x.Node, Right: y.Node}
		heap.Push(&h, heapNode{n, seq})
		seq++
	}
	return h[0].Node
}

// Codes returns the prefix codes formed by the paths from the root to each
// leaf, sorted by symbol. A lone leaf is assigned the 1-bit code 0.
//
// The values are only meaningful if no leaf is deeper than MaxCodeLen.
func (n *Node) Codes() PrefixCodes {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return PrefixCodes{{Sym: n.Sym, Cnt: n.Weight, Len: 1, Val: 0}}
	}

	var codes PrefixCodes
	var walk func(*Node, uint64, uint32)
	walk = func(n *Node, val uint64, depth uint32) {
		if n.IsLeaf() {
			codes = append(codes, PrefixCode{Sym: n.Sym, Cnt: n.Weight, Len: depth, Val: val})
			return
		}
		walk(n.Left, val<<1|0, depth+1)
		walk(n.Right, val<<1|1, depth+1)
	}
	walk(n, 0, 0)
	codes.SortBySymbol()
	return codes
}

// Lengths is identical to Codes, except the values are left unassigned.
// The result is suitable for GeneratePrefixes.
func (n *Node) Lengths() PrefixCodes {
	codes := n.Codes()
	for i := range codes {
		codes[i].Val = 0
	}
	return codes
}

type heapNode struct {
	*Node
	seq int // Insertion order
}

type nodeHeap []heapNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(heapNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}
