package crack512

import "github.com/pkg/errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Block is one padded 1024-bit SHA-512 message block: the input's bytes in big-endian word order,
// a single 0x80 marker, zero fill, and the input's length in bits as the final word.
type Block [wordsPerBlock]uint64

// ErrInputTooLong is returned for inputs that cannot be padded into a single block.
var ErrInputTooLong = errors.New("input longer than 111 bytes")

// Preprocess pads input into a single message block. Inputs longer than MaxInputLen are rejected
// and no block is produced.
func Preprocess(input []byte) (Block, error) {
	var b Block
	ln := len(input)
	if ln > MaxInputLen {
		return b, errors.Wrapf(ErrInputTooLong, "preprocess: %d bytes", ln)
	}

	for i := range b {
		var word uint64
		for j := 0; j < 8; j++ {
			var c byte
			switch p := i<<3 + j; {
			case p < ln:
				c = input[p]
			case p == ln:
				c = 0x80
			}
			word = word<<8 | uint64(c) /* Most-significant byte first, regardless of host order. */
		}
		b[i] = word
	}

	/* Always written last; for short inputs this overwrites zero fill only. */
	b[wordsPerBlock-1] = uint64(ln) << 3
	return b, nil
}

// PreprocessAll pads every input of a batch. The first input that fails aborts the whole batch and
// its index is named in the returned error.
func PreprocessAll(inputs [][]byte) ([]Block, error) {
	blocks := make([]Block, len(inputs))
	for i, in := range inputs {
		b, err := Preprocess(in)
		if err != nil {
			return nil, errors.WithMessagef(err, "entry %d", i)
		}
		blocks[i] = b
	}
	return blocks, nil
}
