// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command hc packs and unpacks files in the Huffman container format.
//
// Example usage:
//
//	$ hc pack twain.txt                # Writes twain.txt.hc
//	$ hc unpack twain.txt.hc -o out    # Writes out
//	$ cat twain.txt.hc | hc unpack - > twain.txt
//
// The input "-" reads from standard input and is only supported by unpack,
// since packing needs to read its input twice. The output "-" writes to
// standard output. If no output is given, its name is derived from the input
// by adding or removing the ".hc" extension. An existing output file is
// never replaced unless -W is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/huffman"
)

const extension = ".hc"

var (
	errPackStdin  = errors.New("cannot pack with stdin as input")
	errNeedOutput = errors.New("the output must be specified when unpacking stdin to a terminal")
)

// environment holds the process-level channels so that they can be replaced
// in tests.
type environment struct {
	stdin          io.Reader
	stdout         io.Writer
	stderr         io.Writer
	stdinTerminal  bool
	stdoutTerminal bool
}

type command struct {
	name      string // Either "pack" or "unpack"
	input     string // Path to the input, or "-" for stdin
	output    string // Path to the output, "-" for stdout, or empty to derive
	overwrite bool
	quiet     bool
}

func main() {
	env := environment{
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		stdinTerminal:  isTerminal(os.Stdin),
		stdoutTerminal: isTerminal(os.Stdout),
	}
	os.Exit(run(os.Args[1:], env))
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: hc pack|unpack <input|-> [-o <output|->] [-W] [-q]\n")
}

func parseArgs(args []string, stderr io.Writer) (*command, error) {
	if len(args) == 0 {
		usage(stderr)
		return nil, errors.New("missing command")
	}
	cmd := &command{name: args[0]}
	switch cmd.name {
	case "pack", "unpack":
	default:
		usage(stderr)
		return nil, fmt.Errorf("unknown command %q", cmd.name)
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cmd.output, "o", "", "Output file, or - for stdout")
	fs.BoolVar(&cmd.overwrite, "W", false, "Overwrite the output file if it exists")
	fs.BoolVar(&cmd.quiet, "q", false, "Do not log progress")

	// Flags may appear on either side of the input.
	var inputs []string
	for rest := args[1:]; ; {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		inputs = append(inputs, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	if len(inputs) != 1 {
		usage(stderr)
		return nil, fmt.Errorf("expected exactly one input, got %d", len(inputs))
	}
	cmd.input = strings.TrimSpace(inputs[0])
	if strings.TrimSpace(cmd.output) == "-" {
		cmd.output = "-"
	}
	return cmd, nil
}

// validateInput checks that the input can be used by the command.
func (c *command) validateInput() error {
	if c.input == "-" {
		if c.name == "pack" {
			return errPackStdin
		}
		return nil
	}
	fi, err := os.Stat(c.input)
	if err != nil {
		return fmt.Errorf("expected the input file to exist: %v", err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("expected the input path %q to be a file", c.input)
	}
	return nil
}

// resolveOutput returns the output path, deriving it from the input if none
// was specified.
func (c *command) resolveOutput(env environment, warn *log.Logger) (string, error) {
	if c.output != "" {
		return c.output, nil
	}
	if c.input == "-" {
		if env.stdoutTerminal {
			return "", errNeedOutput
		}
		return "-", nil
	}
	if c.name == "pack" {
		return c.input + extension, nil
	}
	if filepath.Ext(c.input) == extension {
		return strings.TrimSuffix(c.input, extension), nil
	}
	output := c.input + ".unpacked"
	warn.Printf("The input file does not have the extension %q. The output will be %q.", extension, output)
	return output, nil
}

func run(args []string, env environment) int {
	cmd, err := parseArgs(args, env.stderr)
	if err != nil {
		fmt.Fprintf(env.stderr, "Error : %v\n", err)
		return 1
	}

	// Progress is only logged to a terminal and -q silences it.
	// Failures are always reported.
	logOut := io.Discard
	if env.stdoutTerminal && !cmd.quiet {
		logOut = env.stderr
	}
	info := log.New(logOut, "   Info ", 0)
	warn := log.New(logOut, "Warning ", 0)

	if err := cmd.exec(env, info, warn); err != nil {
		if env.stdoutTerminal {
			log.New(env.stderr, "  Error ", 0).Print(err)
		} else {
			fmt.Fprintf(env.stderr, "Error : %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *command) exec(env environment, info, warn *log.Logger) (err error) {
	if err := c.validateInput(); err != nil {
		return err
	}
	output, err := c.resolveOutput(env, warn)
	if err != nil {
		return err
	}

	var in io.Reader
	if c.input == "-" {
		info.Printf("Opening <stdin>...")
		in = env.stdin
		if env.stdinTerminal {
			warn.Printf("There are no pipes to read from. The result will be empty.")
			in = strings.NewReader("")
		}
	} else {
		info.Printf("Opening %q...", c.input)
		f, err := os.Open(c.input)
		if err != nil {
			return fmt.Errorf("failed to open the input file: %v", err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer
	if output == "-" {
		info.Printf("Writing to <stdout>...")
		out = env.stdout
	} else {
		info.Printf("Writing to %q...", output)
		flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
		if c.overwrite {
			flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}
		f, ferr := os.OpenFile(output, flags, 0666)
		if ferr != nil {
			return fmt.Errorf("failed to create the output file: %v", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to close the output file: %v", cerr)
			}
			if err != nil {
				if rerr := os.Remove(output); rerr != nil {
					warn.Printf("Failed to remove the output file: %v", rerr)
				}
			}
		}()
		out = f
	}

	switch c.name {
	case "pack":
		return pack(out, in.(io.ReadSeeker), info)
	default:
		return unpack(out, in, info)
	}
}

// tallyReader counts the bytes of r until the first seek, so that the
// statistics of the input come from the counting pass of Pack.
type tallyReader struct {
	r    io.ReadSeeker
	ft   huffman.FrequencyTable
	done bool
}

func (tr *tallyReader) Read(buf []byte) (int, error) {
	n, err := tr.r.Read(buf)
	if !tr.done {
		tr.ft.Write(buf[:n])
	}
	return n, err
}

func (tr *tallyReader) Seek(offset int64, whence int) (int64, error) {
	tr.done = true
	return tr.r.Seek(offset, whence)
}

func pack(w io.Writer, r io.ReadSeeker, info *log.Logger) error {
	tr := &tallyReader{r: r}
	n, err := huffman.Pack(w, tr)
	if err != nil {
		return fmt.Errorf("failed to pack the input file: %v", err)
	}
	ft := &tr.ft
	info.Printf("Input is %d bytes with %d distinct values and an entropy of %.4f bits per byte.",
		ft.Total(), ft.Distinct(), ft.Entropy())
	if total := ft.Total(); total > 0 {
		info.Printf("Packed into %d bytes (%.2f%% of the input).", n, 100*float64(n)/float64(total))
	} else {
		info.Printf("Packed into %d bytes.", n)
	}
	return nil
}

func unpack(w io.Writer, r io.Reader, info *log.Logger) error {
	n, err := huffman.Unpack(w, r)
	if err != nil {
		return fmt.Errorf("failed to unpack the data: %v", err)
	}
	info.Printf("Unpacked %d bytes.", n)
	return nil
}
