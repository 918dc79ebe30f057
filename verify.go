package crack512

import "crypto/sha512"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Verify compares each digest against the Go standard library's SHA-512 of the matching input and
// returns the indices that disagree, in ascending order. An input with no digest at its position
// counts as a disagreement.
func Verify(inputs [][]byte, digests []Digest) []int {
	var fails []int
	for i := range inputs {
		if i >= len(digests) || sha512.Sum512(inputs[i]) != digests[i].Bytes() {
			fails = append(fails, i)
		}
	}
	return fails
}
