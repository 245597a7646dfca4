// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Benchmark tool to compare performance between the Huffman container format
// and other compression implementations. Individual implementations are
// referred to as codecs. Codecs that share a format are interchangeable.
//
// Example usage:
//
//	$ go build -o benchmark main.go
//	$ ./benchmark \
//		-tests   ratio,decRate      \
//		-codecs  hc,std,kp,xz       \
//		-files   skewed,twain.txt   \
//		-levels  6                  \
//		-sizes   1e4,1e5,1e6
//
//	BENCHMARK: ratio
//		benchmark          hc ratio  delta   std ratio  delta   ...
//		skewed:6:1e4          3.87x  1.00x       3.41x  0.88x   ...
//
// The inputs "zeros", "random", and "skewed" are generated. Other inputs are
// searched for in the list of paths. The compression level is ignored by the
// hc and xz codecs.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"regexp"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/dsnet/huffman/internal/tool/bench"
)

var sep = regexp.MustCompile("[,:]")

// tests lists the benchmark tests in the order they are run by default.
var tests = []struct {
	name  string
	id    int
	title string // Column title of each codec
	unit  string // Suffix of each value
}{
	{"encRate", bench.TestEncodeRate, "MB/s", ""},
	{"decRate", bench.TestDecodeRate, "MB/s", ""},
	{"ratio", bench.TestCompressRatio, "ratio", "x"},
}

func testNames() string {
	var s []string
	for _, t := range tests {
		s = append(s, t.name)
	}
	return strings.Join(s, ",")
}

// parseCounts parses a list of numbers that may carry SI or IEC prefixes.
func parseCounts(list string) ([]int, error) {
	var ns []int
	for _, s := range sep.Split(list, -1) {
		nf, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %v", s, err)
		}
		ns = append(ns, int(nf))
	}
	return ns, nil
}

func main() {
	log.SetFlags(0)
	testList := flag.String("tests", testNames(), "List of different benchmark tests")
	codecList := flag.String("codecs", strings.Join(bench.Codecs(), ","), "List of codecs to benchmark")
	pathList := flag.String("paths", ".", "List of paths to search for test files")
	fileList := flag.String("files", "zeros,random,skewed", "List of input files to benchmark")
	levelList := flag.String("levels", "6", "List of compression levels to benchmark")
	sizeList := flag.String("sizes", "1e4,1e5,1e6", "List of input sizes to benchmark")
	flag.Parse()

	levels, err := parseCounts(*levelList)
	if err != nil {
		log.Fatalf("invalid levels: %v", err)
	}
	sizes, err := parseCounts(*sizeList)
	if err != nil {
		log.Fatalf("invalid sizes: %v", err)
	}
	selected := make(map[string]bool)
	for _, s := range sep.Split(*testList, -1) {
		selected[s] = true
	}

	ts := time.Now()
	bench.Paths = sep.Split(*pathList, -1)
	files := sep.Split(*fileList, -1)
	codecs := sep.Split(*codecList, -1)
	for _, t := range tests {
		if !selected[t.name] {
			continue
		}
		delete(selected, t.name)
		fmt.Printf("BENCHMARK: %s\n", t.name)
		runBenchmark(t.id, t.title, t.unit, files, codecs, levels, sizes)
		fmt.Println()
	}
	for s := range selected {
		log.Printf("unknown test %q was skipped", s)
	}
	fmt.Printf("RUNTIME: %v\n", time.Since(ts))
}

func runBenchmark(test int, title, unit string, files, codecs []string, levels, sizes []int) {
	// Keep only the codecs that can take part in this test.
	var avail []string
	for _, c := range codecs {
		_, enc := bench.LookupEncoder(c)
		_, dec := bench.LookupDecoder(c)
		if (test == bench.TestDecodeRate && dec != nil) || (test != bench.TestDecodeRate && enc != nil) {
			avail = append(avail, c)
		}
	}
	if len(avail) == 0 {
		fmt.Print("\tSKIP: There are no codecs available.\n")
		return
	}

	var cnt int
	total := len(avail) * len(files) * len(levels) * len(sizes)
	tick := func() {
		fmt.Printf("\t[%6.2f%%] %d of %d\r", 100.0*float64(cnt)/float64(total), cnt, total)
		cnt++
	}

	var results [][]bench.Result
	var names []string
	switch test {
	case bench.TestEncodeRate:
		results, names = bench.BenchmarkEncoderSuite(avail, files, levels, sizes, tick)
	case bench.TestDecodeRate:
		results, names = bench.BenchmarkDecoderSuite(avail, files, levels, sizes, tick)
	case bench.TestCompressRatio:
		results, names = bench.BenchmarkRatioSuite(avail, files, levels, sizes, tick)
	}
	printResults(results, names, avail, title, unit)
}

// printResults prints a right-aligned table with a value and a delta column
// for every codec. Invalid values are left blank.
func printResults(results [][]bench.Result, names, codecs []string, title, unit string) {
	format := func(v float64, suffix string) string {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return fmt.Sprintf("%.2f%s", v, suffix)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"benchmark"}
	for _, c := range codecs {
		header = append(header, c+" "+title, "delta")
	}
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(header, "\t"))
	for i, row := range results {
		cells := []string{names[i]}
		for _, r := range row {
			cells = append(cells, format(r.R, unit), format(r.D, "x"))
		}
		fmt.Fprintf(tw, "\t%s\t\n", strings.Join(cells, "\t"))
	}
	tw.Flush()
}
