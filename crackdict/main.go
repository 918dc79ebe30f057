package main

import (
	"crypto/rand"
	"encoding/hex"
	. "fmt"
	"github.com/mattn/go-colorable"
	"github.com/p7r0x7/crack512"
	"github.com/p7r0x7/crack512/statz"
	"github.com/p7r0x7/vainpath"
	"github.com/pkg/errors"
	. "github.com/spf13/pflag"
	"go.uber.org/zap"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var stdout, stderr io.Writer = colorable.NewColorableStdout(), colorable.NewColorableStderr()
var log = zap.NewNop()

func main() {
	Parse()
	log = newLogger(stderr, pDebug)
	code := program(Args())
	_ = log.Sync()
	os.Exit(code)
}

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "crackdict" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(stderr, yell, "Batched SHA-512 dictionary attacks.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-B seq|par] [-w <int>] t DICTIONARY TARGETS"+n,
		spaces, "[-w <int>] [-n <int>] [--warmup <int>] p INPUTS"+n,
		spaces, "[-w <int>] c INPUTS"+n,
		spaces, "[--seed <hex>] g COUNT"+n+n+
			"Modes:"+n+
			"  t   match every dictionary line's digest against the target digests"+n+
			"  p   compare sequential and parallel hashing speed on INPUTS"+n+
			"  c   check both backends against crypto/sha512 on INPUTS"+n+
			"  g   print COUNT random inputs, usable as a dictionary"+n+n+
			"Options:"+n)
	CommandLine.SetOutput(stderr)
	PrintDefaults()
	Fprint(stderr, n+"Inputs are newline-delimited and at most 111 bytes long. Targets are one"+n+
		"128-digit hexadecimal SHA-512 digest per line."+n)
}

// This program is the command-line interface for crack512. It returns the process exit code.
func program(args []string) int {
	if pHelp || len(args) == 0 {
		help()
		if pHelp {
			return success
		}
		return invalid
	}

	var err error
	switch mode := args[0]; {
	case mode == "t" && len(args) == 3:
		b, perr := backend()
		if perr != nil {
			Fprint(stderr, purp, perr, zero, n+n)
			help()
			return invalid
		}
		err = attack(b, args[1], args[2])
	case mode == "p" && len(args) == 2:
		err = performance(args[1])
	case mode == "c" && len(args) == 2:
		err = correctness(args[1])
	case mode == "g" && len(args) == 2:
		err = generate(args[1])
	default:
		help()
		return invalid
	}
	if err != nil {
		return fatal(err)
	}
	return success
}

// attack loads both lists before any hashing, so an unreadable or malformed file fails fast.
func attack(b crack512.Backend, dictPath, targetPath string) error {
	inputs, err := crack512.LoadPasswords(dictPath)
	if err != nil {
		return err
	}
	targets, err := crack512.LoadTargets(targetPath)
	if err != nil {
		return err
	}
	log.Debug("loaded lists",
		zap.String("dictionary", dictPath), zap.Int("entries", len(inputs)),
		zap.String("targets", targetPath), zap.Int("digests", targets.Len()))

	blocks, err := crack512.PreprocessAll(inputs)
	if err != nil {
		return err
	}
	sums, err := crack512.Dispatch(blocks, b)
	if err != nil {
		return err
	}
	r, err := crack512.Match(sums, inputs, targets)
	if err != nil {
		return err
	}

	for _, h := range r.Hits {
		Fprint(stdout, string(h.Input), " ", yell, h.Digest, zero, n)
	}
	log.Debug("matched", zap.Int("hits", len(r.Hits)), zap.Int("found", r.Found),
		zap.Int("targets", r.Targets))
	if r.Incomplete() {
		Fprint(stdout, purp, "Couldn't find all target hashes", zero, n)
	}
	return nil
}

func performance(path string) error {
	inputs, err := crack512.LoadPasswords(path)
	if err != nil {
		return err
	}
	if !pQuiet {
		Fprint(stdout, "Starting performance measurement"+n,
			"Current averaging sample size is ", pIterations, n,
			"Read in ", len(inputs), " passwords from ", und, display(path), zero, n+n)
	}
	warmup := pWarmup
	if warmup == 0 {
		warmup = -1 /* statz treats 0 as "use the default". */
	}
	r, err := statz.Compare(inputs, statz.Config{
		Iterations: pIterations,
		Warmup:     warmup,
		Workers:    pWorkers,
		Log:        log,
	})
	if err != nil {
		return err
	}
	r.Print(stdout)
	return nil
}

func correctness(path string) error {
	inputs, err := crack512.LoadPasswords(path)
	if err != nil {
		return err
	}
	blocks, err := crack512.PreprocessAll(inputs)
	if err != nil {
		return err
	}

	failed := 0
	for _, b := range []crack512.Backend{
		crack512.Sequential{},
		&crack512.Parallel{Workers: pWorkers, Log: log},
	} {
		Fprint(stdout, "Checking ", b.Name(), n)
		sums, err := crack512.Dispatch(blocks, b)
		if err != nil {
			return err
		}
		fails := crack512.Verify(inputs, sums)
		for _, i := range fails {
			Fprint(stdout, purp, "FAIL at index ", i, zero, n)
		}
		if len(fails) == 0 {
			Fprint(stdout, "All hashes match expectation"+n)
		}
		failed += len(fails)
	}
	if failed > 0 {
		return errors.Errorf("%d digests differ from crypto/sha512", failed)
	}
	return nil
}

func generate(arg string) error {
	count, err := strconv.Atoi(arg)
	if err != nil || count < 0 {
		return errors.Errorf("invalid count %q", arg)
	}
	var seed [32]byte
	if pSeed == "" {
		if _, err = rand.Read(seed[:]); err != nil {
			return errors.Wrap(err, "could not seed generator")
		}
	} else if b, err := hex.DecodeString(pSeed); err != nil || len(b) != len(seed) {
		return errors.Errorf("seed must be %d hexadecimal digits", len(seed)*2)
	} else {
		copy(seed[:], b)
	}
	for _, in := range crack512.Synthesize(count, seed) {
		if _, err = Fprint(stdout, string(in), n); err != nil {
			return err
		}
	}
	return nil
}

func backend() (crack512.Backend, error) {
	b, err := crack512.ParseBackend(pBackend, pWorkers)
	if err != nil {
		return nil, err
	}
	if p, ok := b.(*crack512.Parallel); ok {
		p.Log = log
	}
	return b, nil
}

func display(path string) string {
	if pNoCodes {
		return filepath.Clean(path)
	}
	return vainpath.Simplify(path)
}

func fatal(err error) int {
	if pStrict {
		panic(err)
	}
	log.Debug("fatal", zap.Error(err))
	Fprint(stderr, purp, err, zero, n)
	return failure
}
