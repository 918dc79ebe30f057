package crack512

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

const abcHex = "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
	"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"

func TestDigest_RoundTrip(t *testing.T) {
	d, err := ParseDigest(strings.ToUpper(abcHex))
	require.NoError(t, err)
	assert.Equal(t, uint64(0xddaf35a193617aba), d[0])
	assert.Equal(t, uint64(0xa54ca49f), d[7]&0xffffffff)
	assert.Equal(t, abcHex, d.String())
}

func TestDigest_ZeroPadded(t *testing.T) {
	d := Digest{1}
	assert.Equal(t, "0000000000000001"+strings.Repeat("0", 112), d.String())
	assert.Len(t, Digest{}.String(), 128)
}

func TestParseDigest_Rejects(t *testing.T) {
	testCases := map[string]string{
		"empty":     "",
		"short":     abcHex[:127],
		"long":      abcHex + "0",
		"non_hex":   "zz" + abcHex[2:],
		"separator": abcHex[:64] + " " + abcHex[65:],
	}
	for name, s := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDigest(s)
			require.ErrorIs(t, err, ErrDigestFormat)
		})
	}
}
