// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"math/bits"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from the math.Rand in that the exact output will be consistent
// across different versions of Go.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

func (r *Rand) Uint64() uint64 {
	r.Encrypt(r.blk[:], r.blk[:])
	return binary.LittleEndian.Uint64(r.blk[:])
}

func (r *Rand) Int() int {
	return int(r.Uint64() >> 2)
}

func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

// SkewedBytes returns n bytes where the value k occurs with probability
// 2^-(k+1) for k < 62. The resulting distribution produces deep Huffman trees.
func (r *Rand) SkewedBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(bits.TrailingZeros64(r.Uint64() | 1<<62))
	}
	return b
}

// Counts returns n random symbol counts, where roughly a quarter are zero.
func (r *Rand) Counts(n int) []uint64 {
	cnts := make([]uint64, n)
	for i := range cnts {
		if r.Intn(4) > 0 {
			cnts[i] = uint64(1 + r.Intn(1<<uint(r.Intn(20))))
		}
	}
	return cnts
}

func (r *Rand) Perm(n int) []int {
	m := make([]int, n)
	for i := 0; i < n; i++ {
		j := r.Intn(i + 1)
		m[i] = m[j]
		m[j] = i
	}
	return m
}
