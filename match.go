package crack512

import "github.com/pkg/errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// TargetSet is an immutable set of digests searched for during a dictionary attack. It is never
// written to after construction and may be shared between goroutines.
type TargetSet struct {
	m map[Digest]struct{}
}

// NewTargetSet builds a set from digests; duplicates collapse.
func NewTargetSet(digests ...Digest) *TargetSet {
	t := &TargetSet{m: make(map[Digest]struct{}, len(digests))}
	for _, d := range digests {
		t.m[d] = struct{}{}
	}
	return t
}

func (t *TargetSet) Len() int { return len(t.m) }

func (t *TargetSet) Contains(d Digest) bool {
	_, ok := t.m[d]
	return ok
}

// Hit is one dictionary entry whose digest is a target.
type Hit struct {
	Input  []byte
	Digest Digest
}

// Result is the outcome of a matching pass. Found counts distinct targets hit, so several dictionary
// entries hashing to the same target count once.
type Result struct {
	Hits    []Hit
	Found   int
	Targets int
}

// Incomplete reports whether some targets were never produced by the dictionary. This is an
// expected outcome of an attack, not a failure.
func (r Result) Incomplete() bool { return r.Found < r.Targets }

// Match scans digests in dictionary order and reports every entry whose digest is in targets.
// digests[i] must be the digest of inputs[i].
func Match(digests []Digest, inputs [][]byte, targets *TargetSet) (Result, error) {
	if len(digests) != len(inputs) {
		return Result{}, errors.Errorf("match: %d digests for %d inputs", len(digests), len(inputs))
	}
	r := Result{Targets: targets.Len()}
	seen := map[Digest]struct{}{}
	for i, d := range digests {
		if !targets.Contains(d) {
			continue
		}
		r.Hits = append(r.Hits, Hit{inputs[i], d})
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			r.Found++
		}
	}
	return r, nil
}
