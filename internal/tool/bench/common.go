// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of the Huffman container format
// against other compression implementations with respect to encode speed,
// decode speed, and ratio.
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/dsnet/golib/unitconv"
	"github.com/dsnet/huffman/internal/testutil"
)

type Format int

const (
	FormatHuffman Format = iota
	FormatFlate
	FormatXZ
)

func (f Format) String() string {
	switch f {
	case FormatHuffman:
		return "hc"
	case FormatFlate:
		return "fl"
	case FormatXZ:
		return "xz"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders map[Format]map[string]Encoder
	Decoders map[Format]map[string]Decoder

	// List of search paths for test files.
	Paths []string
)

// The decompression speed benchmark works by decompressing some pre-compressed
// data. In order for the benchmarks to be consistent, the same encoder should
// be used to generate the pre-compressed data for all the trials.
//
// encRefs defines the priority order for which encoders to choose first as the
// reference compressor of a format.
var encRefs = []string{"hc", "std", "xz"}

// Synthetic inputs that need no file on disk.
var synthetic = map[string]func(n int) []byte{
	"zeros":  func(n int) []byte { return make([]byte, n) },
	"random": func(n int) []byte { return testutil.NewRand(0).Bytes(n) },
	"skewed": func(n int) []byte { return testutil.NewRand(0).SkewedBytes(n) },
}

func RegisterEncoder(ft Format, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[Format]map[string]Encoder)
	}
	if Encoders[ft] == nil {
		Encoders[ft] = make(map[string]Encoder)
	}
	Encoders[ft][name] = enc
}

func RegisterDecoder(ft Format, name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[Format]map[string]Decoder)
	}
	if Decoders[ft] == nil {
		Decoders[ft] = make(map[string]Decoder)
	}
	Decoders[ft][name] = dec
}

// Codecs returns the names of all registered codecs in sorted order,
// except that "hc" always appears first.
func Codecs() []string {
	m := make(map[string]bool)
	for _, v := range Encoders {
		for k := range v {
			m[k] = true
		}
	}
	for _, v := range Decoders {
		for k := range v {
			m[k] = true
		}
	}
	hasHC := m["hc"]
	delete(m, "hc")
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	if hasHC {
		s = append([]string{"hc"}, s...)
	}
	return s
}

// LookupEncoder finds the encoder registered under name in any format.
func LookupEncoder(name string) (Format, Encoder) {
	for ft, m := range Encoders {
		if enc, ok := m[name]; ok {
			return ft, enc
		}
	}
	return 0, nil
}

// LookupDecoder finds the decoder registered under name in any format.
func LookupDecoder(name string) (Format, Decoder) {
	for ft, m := range Decoders {
		if dec, ok := m[name]; ok {
			return ft, dec
		}
	}
	return 0, nil
}

// ReferenceEncoder returns the encoder used to prepare the input of the
// decoder benchmarks for the given format.
func ReferenceEncoder(ft Format) Encoder {
	for _, c := range encRefs {
		if enc, ok := Encoders[ft][c]; ok {
			return enc // Choose by priority
		}
	}
	var names []string
	for c := range Encoders[ft] {
		names = append(names, c)
	}
	if len(names) == 0 {
		return nil // There are no encoders
	}
	sort.Strings(names)
	return Encoders[ft][names[0]]
}

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(io.Discard, lvl)
			_, err := io.Copy(wr, bytes.NewReader(input))
			if err := wr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// rateOf converts a benchmark result into a rate in MB/s.
func rateOf(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := float64(result.T.Nanoseconds()) / 1e3 / float64(result.N)
	if us == 0 {
		return Result{}
	}
	return Result{R: float64(result.Bytes) / us}
}

// BenchmarkEncoderSuite runs multiple benchmarks across all encoder
// implementations, files, levels, and sizes.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkEncoderSuite(encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			_, e := LookupEncoder(enc)
			return rateOf(BenchmarkEncoder(input, e, lvl))
		})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewReader(input)))
			cnt, err := io.Copy(io.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(cnt)
		}
	})
}

// BenchmarkDecoderSuite runs multiple benchmarks across all decoder
// implementations, files, levels, and sizes. The input of each decoder is
// produced by the reference encoder of its format.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(levels)*len(sizes)][len(decs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkDecoderSuite(decs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(decs, files, levels, sizes, tick,
		func(input []byte, dec string, lvl int) Result {
			ft, d := LookupDecoder(dec)
			ref := ReferenceEncoder(ft)
			if ref == nil {
				return Result{}
			}
			output, err := encode(ref, input, lvl)
			if err != nil {
				return Result{}
			}
			return rateOf(BenchmarkDecoder(output, d))
		})
}

// BenchmarkRatioSuite runs multiple benchmarks across all encoder
// implementations, files, levels, and sizes.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			_, e := LookupEncoder(enc)
			if e == nil {
				return Result{}
			}
			output, err := encode(e, input, lvl)
			if err != nil {
				return Result{}
			}
			ratio := float64(len(input)) / float64(len(output))
			return Result{R: ratio}
		})
}

func encode(enc Encoder, input []byte, lvl int) ([]byte, error) {
	buf := new(bytes.Buffer)
	wr := enc(buf, lvl)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type benchFunc func(input []byte, codec string, level int) Result

func benchmarkSuite(codecs, files []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(levels) * len(sizes)
	d1 := len(codecs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every codec, file, level, and size.
	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := LoadInput(f, n)
				name := getName(f, l, len(b))
				for j, c := range codecs {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						results[i][j] = run(b, c, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

// LoadInput returns n bytes of the named input. The names "zeros", "random",
// and "skewed" are generated, while any other name is loaded from the search
// paths and resized to n bytes.
func LoadInput(file string, n int) ([]byte, error) {
	if gen, ok := synthetic[file]; ok {
		if n < 0 {
			return nil, fmt.Errorf("synthetic input %q needs a size", file)
		}
		return gen(n), nil
	}
	return testutil.LoadFile(getPath(file), n)
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sn)
}
