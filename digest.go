package crack512

import (
	"encoding/binary"
	"encoding/hex"
	"github.com/pkg/errors"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Digest is a 512-bit SHA-512 result held as eight big-endian words. It is comparable and is used
// directly as a lookup key.
type Digest [wordsPerDigest]uint64

// ErrDigestFormat is returned when text is not exactly 128 hexadecimal digits.
var ErrDigestFormat = errors.New("digest is not a 128-digit hexadecimal string")

// String renders d as 128 lowercase hexadecimal digits, word 0 first.
func (d Digest) String() string {
	sum := d.Bytes()
	return hex.EncodeToString(sum[:])
}

// Bytes returns the canonical big-endian byte form of d, as produced by other SHA-512
// implementations.
func (d Digest) Bytes() (sum [Size]byte) {
	for i, w := range d {
		binary.BigEndian.PutUint64(sum[i<<3:], w)
	}
	return sum
}

// ParseDigest reads a digest from its text form. Both letter cases are accepted.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != Size*2 {
		return d, errors.Wrapf(ErrDigestFormat, "%d characters", len(s))
	}
	var sum [Size]byte
	if _, err := hex.Decode(sum[:], []byte(s)); err != nil {
		return d, errors.Wrap(ErrDigestFormat, err.Error())
	}
	for i := range d {
		d[i] = binary.BigEndian.Uint64(sum[i<<3:])
	}
	return d, nil
}
