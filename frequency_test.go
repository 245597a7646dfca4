// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/dsnet/huffman/internal/testutil"
)

func TestFrequencyTable(t *testing.T) {
	var uniform []byte
	for i := 0; i < 256; i++ {
		uniform = append(uniform, byte(i), byte(i))
	}

	var vectors = []struct {
		input    []byte
		total    uint64
		distinct int
		entropy  float64
	}{
		{input: nil, total: 0, distinct: 0, entropy: 0},
		{input: []byte("zzzz"), total: 4, distinct: 1, entropy: 0},
		{input: []byte("aab"), total: 3, distinct: 2, entropy: 0.9182958340544896},
		{input: []byte("abcd"), total: 4, distinct: 4, entropy: 2},
		{input: uniform, total: 512, distinct: 256, entropy: 8},
	}

	for i, v := range vectors {
		var ft FrequencyTable
		n, err := ft.ReadFrom(bytes.NewReader(v.input))
		if err != nil {
			t.Errorf("test %d, unexpected ReadFrom error: %v", i, err)
		}
		if n != int64(len(v.input)) {
			t.Errorf("test %d, ReadFrom() = %d, want %d", i, n, len(v.input))
		}
		if got := ft.Total(); got != v.total {
			t.Errorf("test %d, Total() = %d, want %d", i, got, v.total)
		}
		if got := ft.Distinct(); got != v.distinct {
			t.Errorf("test %d, Distinct() = %d, want %d", i, got, v.distinct)
		}
		if got := ft.Entropy(); math.Abs(got-v.entropy) > 1e-9 {
			t.Errorf("test %d, Entropy() = %v, want %v", i, got, v.entropy)
		}
	}

	var ft FrequencyTable
	ft.Write([]byte("hello"))
	if ft['l'] != 2 || ft['h'] != 1 || ft['x'] != 0 {
		t.Errorf("Write counts mismatch: h=%d, l=%d, x=%d", ft['h'], ft['l'], ft['x'])
	}

	errBuggy := io.ErrClosedPipe
	br := &testutil.BuggyReader{R: strings.NewReader("abcdef"), N: 3, Err: errBuggy}
	ft = FrequencyTable{}
	if n, err := ft.ReadFrom(br); n != 3 || err != errBuggy {
		t.Errorf("ReadFrom() = (%d, %v), want (3, %v)", n, err, errBuggy)
	}
	if got := ft.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
}

// TestCodeLengthBound checks that the average code length never falls below
// the entropy and never exceeds it by more than one bit.
func TestCodeLengthBound(t *testing.T) {
	for name, input := range testInputs() {
		if len(input) == 0 {
			continue
		}
		var ft FrequencyTable
		ft.Write(input)

		var buf bytes.Buffer
		if _, err := Pack(&buf, bytes.NewReader(input)); err != nil {
			t.Fatalf("%s: unexpected Pack error: %v", name, err)
		}
		hdr, err := ReadHeader(&buf)
		if err != nil {
			t.Fatalf("%s: unexpected ReadHeader error: %v", name, err)
		}
		var bits float64
		for sym, n := range hdr.Lengths {
			bits += float64(n) * float64(ft[sym])
		}
		avg := bits / float64(ft.Total())
		if h := ft.Entropy(); avg < h-1e-9 || avg > h+1+1e-9 {
			t.Errorf("%s: average code length %v not within [%v, %v]", name, avg, h, h+1)
		}
	}
}
