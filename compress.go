package crack512

import . "math/bits"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The compression function below is shared verbatim by every backend; it reads only its own block
// and writes only its own result, so any number of calls may run at once.

// Compress runs the 80-round SHA-512 compression function over a single block, starting from the
// standard initialization vector, and returns the finished digest. Messages spanning more than one
// block are not supported, so there is no chaining value.
func Compress(b *Block) Digest {
	var w [scheduleLen]uint64
	copy(w[:], b[:])

	/* Message schedule; every addition wraps modulo 2^64. */
	for i := wordsPerBlock; i < scheduleLen; i++ {
		v1, v2 := w[i-15], w[i-2]
		s0 := RotateLeft64(v1, -1) ^ RotateLeft64(v1, -8) ^ v1>>7
		s1 := RotateLeft64(v2, -19) ^ RotateLeft64(v2, -61) ^ v2>>6
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b1, c, d, e, f, g, h := iv[0], iv[1], iv[2], iv[3], iv[4], iv[5], iv[6], iv[7]

	for i := 0; i < scheduleLen; i++ {
		S1 := RotateLeft64(e, -14) ^ RotateLeft64(e, -18) ^ RotateLeft64(e, -41)
		ch := e&f ^ ^e&g
		t1 := h + S1 + ch + roundConstants[i] + w[i]
		S0 := RotateLeft64(a, -28) ^ RotateLeft64(a, -34) ^ RotateLeft64(a, -39)
		maj := a&b1 ^ a&c ^ b1&c
		t2 := S0 + maj

		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b1
		b1 = a
		a = t1 + t2
	}

	return Digest{
		a + iv[0], b1 + iv[1], c + iv[2], d + iv[3],
		e + iv[4], f + iv[5], g + iv[6], h + iv[7],
	}
}
