package main

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"github.com/p7r0x7/crack512"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func digestOf(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

// run resets every option, applies set, and runs the program with captured output.
func run(t *testing.T, set func(), args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })

	yell, purp, und, zero = "", "", "", ""
	pBackend, pSeed = "par", ""
	pWorkers, pIterations, pWarmup = 0, 2, 0
	pHelp, pNoCodes, pQuiet, pStrict, pDebug = false, true, false, false, false
	if set != nil {
		set()
	}
	code := program(args)
	return code, out.String(), errOut.String()
}

func write(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func TestAttack_AllFound(t *testing.T) {
	dict := write(t, "dict.txt", "abc", "hello")
	targets := write(t, "targets.txt", digestOf("abc"))

	for _, backend := range []string{"seq", "par"} {
		code, out, _ := run(t, func() { pBackend = backend }, "t", dict, targets)
		assert.Equal(t, success, code, backend)
		assert.Equal(t, "abc "+digestOf("abc")+"\n", out, backend)
	}
}

func TestAttack_Incomplete(t *testing.T) {
	dict := write(t, "dict.txt", "abc", "hello")
	targets := write(t, "targets.txt", digestOf("abc"), digestOf("absent"))

	code, out, _ := run(t, nil, "t", dict, targets)
	assert.Equal(t, success, code)
	assert.Equal(t, "abc "+digestOf("abc")+"\nCouldn't find all target hashes\n", out)
}

func TestAttack_MalformedTargets(t *testing.T) {
	dict := write(t, "dict.txt", "abc")
	targets := write(t, "targets.txt", digestOf("abc"), "not a digest")

	code, out, errOut := run(t, nil, "t", dict, targets)
	assert.Equal(t, failure, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "line 2")
}

func TestAttack_MissingFiles(t *testing.T) {
	targets := write(t, "targets.txt", digestOf("abc"))

	code, _, errOut := run(t, nil, "t", filepath.Join(t.TempDir(), "nope.txt"), targets)
	assert.Equal(t, failure, code)
	assert.Contains(t, errOut, "could not open dictionary file")
}

func TestAttack_InputTooLong(t *testing.T) {
	dict := write(t, "dict.txt", "abc", strings.Repeat("x", crack512.MaxInputLen+1))
	targets := write(t, "targets.txt", digestOf("abc"))

	code, out, errOut := run(t, nil, "t", dict, targets)
	assert.Equal(t, failure, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "entry 1")
}

func TestAttack_Strict(t *testing.T) {
	targets := write(t, "targets.txt", digestOf("abc"))
	assert.Panics(t, func() {
		run(t, func() { pStrict = true }, "t", filepath.Join(t.TempDir(), "nope.txt"), targets)
	})
}

func TestUsage(t *testing.T) {
	dict := write(t, "dict.txt", "abc")
	for name, args := range map[string][]string{
		"none":         nil,
		"unknown mode": {"x", dict},
		"missing file": {"t", dict},
		"extra file":   {"c", dict, dict},
	} {
		code, out, errOut := run(t, nil, args...)
		assert.Equal(t, invalid, code, name)
		assert.Empty(t, out, name)
		assert.Contains(t, errOut, "Usage:", name)
	}

	code, _, errOut := run(t, func() { pBackend = "fpga" }, "t", dict, dict)
	assert.Equal(t, invalid, code)
	assert.Contains(t, errOut, "fpga")

	code, _, _ = run(t, func() { pHelp = true })
	assert.Equal(t, success, code)
}

func TestCorrectness(t *testing.T) {
	path := write(t, "inputs.txt", "", "abc", strings.Repeat("a", crack512.MaxInputLen))

	code, out, _ := run(t, func() { pWorkers = 2 }, "c", path)
	assert.Equal(t, success, code)
	assert.Contains(t, out, "Checking sequential")
	assert.Contains(t, out, "Checking parallel")
	assert.Equal(t, 2, strings.Count(out, "All hashes match expectation"))
	assert.NotContains(t, out, "FAIL")
}

func TestPerformance(t *testing.T) {
	path := write(t, "inputs.txt", "abc", "password", "hunter2")

	code, out, _ := run(t, nil, "p", path)
	assert.Equal(t, success, code)
	assert.Contains(t, out, "Read in 3 passwords")
	assert.Contains(t, out, "crack512 sequential")
	assert.Contains(t, out, "crack512 parallel")
	assert.Contains(t, out, "parallel speedup")

	code, out, _ = run(t, func() { pQuiet = true }, "p", path)
	assert.Equal(t, success, code)
	assert.NotContains(t, out, "Starting performance measurement")
}

func TestGenerate(t *testing.T) {
	seed := strings.Repeat("0f", 32)
	code, first, _ := run(t, func() { pSeed = seed }, "g", "50")
	require.Equal(t, success, code)
	_, second, _ := run(t, func() { pSeed = seed }, "g", "50")
	assert.Equal(t, first, second)

	inputs, err := crack512.ReadPasswords(strings.NewReader(first))
	require.NoError(t, err)
	assert.Len(t, inputs, 50)
	_, err = crack512.PreprocessAll(inputs)
	assert.NoError(t, err)

	code, _, errOut := run(t, func() { pSeed = "abc" }, "g", "5")
	assert.Equal(t, failure, code)
	assert.Contains(t, errOut, "64 hexadecimal digits")

	code, _, _ = run(t, nil, "g", "-1")
	assert.Equal(t, failure, code)
}

func TestGenerate_FeedsAttack(t *testing.T) {
	code, list, _ := run(t, func() { pSeed = strings.Repeat("a5", 32) }, "g", "200")
	require.Equal(t, success, code)
	lines := strings.Split(strings.TrimSuffix(list, "\n"), "\n")
	require.Len(t, lines, 200)

	dict := write(t, "dict.txt", lines...)
	targets := write(t, "targets.txt", digestOf(lines[7]), digestOf(lines[199]))
	code, out, _ := run(t, nil, "t", dict, targets)
	assert.Equal(t, success, code)
	assert.Contains(t, out, lines[7]+" "+digestOf(lines[7])+"\n")
	assert.Contains(t, out, lines[199]+" "+digestOf(lines[199])+"\n")
	assert.NotContains(t, out, "Couldn't find")
}
