// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/huffman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(stdin string, terminal bool) (environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := environment{
		stdin:          strings.NewReader(stdin),
		stdout:         &stdout,
		stderr:         &stderr,
		stdoutTerminal: terminal,
	}
	return env, &stdout, &stderr
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0666))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestParseArgs(t *testing.T) {
	var vectors = []struct {
		args []string
		want *command // Nil if an error is expected
	}{
		{args: nil},
		{args: []string{"compress", "a"}},
		{args: []string{"pack"}},
		{args: []string{"pack", "a", "b"}},
		{args: []string{"pack", "-x", "a"}},
		{
			args: []string{"pack", "a.txt"},
			want: &command{name: "pack", input: "a.txt"},
		},
		{
			args: []string{"unpack", "-W", "a.hc", "-o", "out", "-q"},
			want: &command{name: "unpack", input: "a.hc", output: "out", overwrite: true, quiet: true},
		},
		{
			args: []string{"unpack", " - ", "-o", " - "},
			want: &command{name: "unpack", input: "-", output: "-"},
		},
	}

	for i, v := range vectors {
		got, err := parseArgs(v.args, io.Discard)
		if v.want == nil {
			assert.Error(t, err, "test %d", i)
			continue
		}
		if assert.NoError(t, err, "test %d", i) {
			assert.Equal(t, v.want, got, "test %d", i)
		}
	}
}

func TestResolveOutput(t *testing.T) {
	discard := log.New(io.Discard, "", 0)
	var vectors = []struct {
		cmd      command
		terminal bool
		want     string
		wantErr  error
	}{
		{cmd: command{name: "pack", input: "a.txt"}, want: "a.txt.hc"},
		{cmd: command{name: "pack", input: "a"}, want: "a.hc"},
		{cmd: command{name: "pack", input: "a.txt", output: "b"}, want: "b"},
		{cmd: command{name: "unpack", input: "dir/a.txt.hc"}, want: "dir/a.txt"},
		{cmd: command{name: "unpack", input: "a.extension"}, want: "a.extension.unpacked"},
		{cmd: command{name: "unpack", input: "a"}, want: "a.unpacked"},
		{cmd: command{name: "unpack", input: "-"}, want: "-"},
		{cmd: command{name: "unpack", input: "-"}, terminal: true, wantErr: errNeedOutput},
		{cmd: command{name: "unpack", input: "-", output: "x"}, terminal: true, want: "x"},
	}

	for i, v := range vectors {
		got, err := v.cmd.resolveOutput(environment{stdoutTerminal: v.terminal}, discard)
		assert.Equal(t, v.wantErr, err, "test %d", i)
		assert.Equal(t, v.want, got, "test %d", i)
	}
}

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "twain.txt")
	const text = "The report of my death was an exaggeration."
	writeFile(t, input, text)

	env, _, stderr := testEnv("", true)
	require.Equal(t, 0, run([]string{"pack", input}, env), stderr.String())
	assert.Contains(t, stderr.String(), "entropy")

	// The packed file must not be replaced without -W.
	env, _, _ = testEnv("", false)
	require.Equal(t, 1, run([]string{"pack", input}, env))
	packed := readFile(t, input+".hc")
	assert.True(t, strings.HasPrefix(packed, "HUFC"))

	require.NoError(t, os.Remove(input))
	env, _, stderr = testEnv("", false)
	require.Equal(t, 0, run([]string{"unpack", input + ".hc"}, env), stderr.String())
	assert.Equal(t, text, readFile(t, input))
	assert.Empty(t, stderr.String())

	env, _, stderr = testEnv("", true)
	require.Equal(t, 0, run([]string{"unpack", "-W", "-q", input + ".hc", "-o", input}, env))
	assert.Equal(t, text, readFile(t, input))
	assert.Empty(t, stderr.String())

	// Unpack from stdin to stdout.
	env, stdout, _ := testEnv(packed, false)
	require.Equal(t, 0, run([]string{"unpack", "-"}, env))
	assert.Equal(t, text, stdout.String())

	// Pack to stdout.
	env, stdout, _ = testEnv("", false)
	require.Equal(t, 0, run([]string{"pack", input, "-o", "-"}, env))
	assert.Equal(t, packed, stdout.String())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	env, _, stderr := testEnv("", false)
	assert.Equal(t, 1, run([]string{"pack", "-"}, env))
	assert.Equal(t, "Error : "+errPackStdin.Error()+"\n", stderr.String())

	env, _, _ = testEnv("", true)
	assert.Equal(t, 1, run([]string{"unpack", "-"}, env))

	env, _, _ = testEnv("", false)
	assert.Equal(t, 1, run([]string{"pack", filepath.Join(dir, "missing")}, env))
	assert.Equal(t, 1, run([]string{"pack", dir}, env))
	assert.Equal(t, 1, run([]string{"pack"}, env))

	// Failures are reported on a terminal even when progress is silenced.
	env, _, stderr = testEnv("", true)
	assert.Equal(t, 1, run([]string{"pack", "-q", filepath.Join(dir, "missing")}, env))
	assert.True(t, strings.HasPrefix(stderr.String(), "  Error "), "stderr: %q", stderr.String())
	assert.Contains(t, stderr.String(), "expected the input file to exist")

	// A corrupt input must not leave a partial output behind.
	bad := filepath.Join(dir, "bad.hc")
	writeFile(t, bad, "HUFC\x01\x00\x00\x00\x00\x00\x00\x00\x05\x01\x01\x61\x01")
	env, _, stderr = testEnv("", false)
	assert.Equal(t, 1, run([]string{"unpack", bad}, env))
	assert.Contains(t, stderr.String(), "Error : ")
	_, err := os.Stat(filepath.Join(dir, "bad"))
	assert.True(t, os.IsNotExist(err), "output file should be removed")

	// An existing output is kept when creation fails.
	existing := filepath.Join(dir, "bad")
	writeFile(t, existing, "keep")
	env, _, _ = testEnv("", false)
	assert.Equal(t, 1, run([]string{"unpack", bad}, env))
	assert.Equal(t, "keep", readFile(t, existing))
}

func TestTallyReader(t *testing.T) {
	input := "abracadabra"
	tr := &tallyReader{r: strings.NewReader(input)}

	var packed bytes.Buffer
	_, err := huffman.Pack(&packed, tr)
	require.NoError(t, err)

	// Only the counting pass of Pack is tallied.
	assert.Equal(t, uint64(len(input)), tr.ft.Total())
	assert.Equal(t, uint64(5), tr.ft['a'])
	assert.Equal(t, 5, tr.ft.Distinct())
	assert.True(t, tr.done)
}
