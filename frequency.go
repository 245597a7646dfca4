// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"io"
	"math"
)

// FrequencyTable counts the occurrences of each byte value.
type FrequencyTable [256]uint64

// Write counts every byte of p. It never fails.
func (ft *FrequencyTable) Write(p []byte) (int, error) {
	for _, b := range p {
		ft[b]++
	}
	return len(p), nil
}

// ReadFrom counts every byte read from r until io.EOF. It reports the number
// of bytes read and any error other than io.EOF unchanged.
func (ft *FrequencyTable) ReadFrom(r io.Reader) (n int64, err error) {
	var buf [32 << 10]byte
	for {
		cnt, err := r.Read(buf[:])
		ft.Write(buf[:cnt])
		n += int64(cnt)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}

// Total reports the sum of all counts.
func (ft *FrequencyTable) Total() (n uint64) {
	for _, c := range ft {
		n += c
	}
	return n
}

// Distinct reports the number of byte values with a non-zero count.
func (ft *FrequencyTable) Distinct() (n int) {
	for _, c := range ft {
		if c > 0 {
			n++
		}
	}
	return n
}

// Entropy reports the Shannon entropy of the distribution in bits per byte.
// This is a lower bound on the average code length of any prefix code.
func (ft *FrequencyTable) Entropy() float64 {
	total := float64(ft.Total())
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range ft {
		if c > 0 {
			p := float64(c) / total
			h -= p * math.Log2(p)
		}
	}
	return h
}
