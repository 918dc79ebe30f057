package crack512

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSynthesize(t *testing.T) {
	a, b := Synthesize(500, [32]byte{9}), Synthesize(500, [32]byte{9})
	assert.Equal(t, a, b, "same seed, same list")
	assert.NotEqual(t, a, Synthesize(500, [32]byte{10}))

	lengths := map[int]bool{}
	for _, in := range a {
		assert.LessOrEqual(t, len(in), MaxInputLen)
		assert.False(t, bytes.ContainsAny(in, "\r\n "), "%q", in)
		lengths[len(in)] = true
	}
	assert.Greater(t, len(lengths), 50, "lengths should be spread out")
	assert.Empty(t, Synthesize(0, [32]byte{}))
}
