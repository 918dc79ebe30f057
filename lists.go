package crack512

import (
	"bufio"
	"github.com/pkg/errors"
	"io"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Loaders for the newline-delimited dictionary and target files. Line endings of either style are
// accepted; bufio.ScanLines drops a trailing carriage return.

const maxLine = 1 << 20

// ReadPasswords returns every line of r as one input. Lengths are not checked here; Preprocess
// rejects inputs that are too long.
func ReadPasswords(r io.Reader) ([][]byte, error) {
	var out [][]byte
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLine)
	for s.Scan() {
		out = append(out, append([]byte(nil), s.Bytes()...))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read dictionary")
	}
	return out, nil
}

// LoadPasswords reads a dictionary file.
func LoadPasswords(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open dictionary file")
	}
	defer f.Close()
	return ReadPasswords(f)
}

// ReadTargets parses one digest per line. Any malformed line, blank lines included, fails the whole
// load and is reported by its 1-based line number.
func ReadTargets(r io.Reader) (*TargetSet, error) {
	var digests []Digest
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLine)
	for line := 1; s.Scan(); line++ {
		d, err := ParseDigest(s.Text())
		if err != nil {
			return nil, errors.WithMessagef(err, "target hash %q on line %d", s.Text(), line)
		}
		digests = append(digests, d)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read targets")
	}
	return NewTargetSet(digests...), nil
}

// LoadTargets reads a target file.
func LoadTargets(path string) (*TargetSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open target file")
	}
	defer f.Close()
	return ReadTargets(f)
}
