package crack512

import "github.com/aead/chacha20/chacha"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Synthesize returns n pseudo-random printable inputs of 0 to MaxInputLen bytes each, drawn from a
// ChaCha20 keystream keyed by seed. The same seed always yields the same list, and no input
// contains a line break, so the list can be written out as a dictionary file.
func Synthesize(n int, seed [32]byte) [][]byte {
	var nonce [8]byte
	stream, _ := chacha.NewCipher(nonce[:], seed[:], 20)

	out, buf := make([][]byte, n), make([]byte, MaxInputLen+1)
	for i := range out {
		for j := range buf {
			buf[j] = 0
		}
		stream.XORKeyStream(buf, buf)
		in := make([]byte, int(buf[0])%(MaxInputLen+1))
		for j := range in {
			in[j] = '!' + buf[j+1]%94 /* '!' through '~' */
		}
		out[i] = in
	}
	return out
}
