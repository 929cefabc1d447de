package chunk

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromBytes_RoundTrip(t *testing.T) {
	t.Parallel()

	raw := make([]byte, IDSize)
	for i := range raw {
		raw[i] = byte(i)
	}

	id, err := IDFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, id.Bytes())
}

func TestIDFromBytes_WrongLength(t *testing.T) {
	t.Parallel()

	_, err := IDFromBytes(make([]byte, IDSize-1))
	require.Error(t, err)

	_, err = IDFromBytes(make([]byte, IDSize+1))
	require.Error(t, err)

	_, err = IDFromBytes(nil)
	require.Error(t, err)
}

func TestIDFromHex_RoundTrip(t *testing.T) {
	t.Parallel()

	var id ID
	for i := range id {
		id[i] = byte(255 - i)
	}

	decoded, err := IDFromHex(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestIDFromHex_Invalid(t *testing.T) {
	t.Parallel()

	// Too short
	_, err := IDFromHex("abcd")
	require.Error(t, err)

	// Right length, not hex
	_, err = IDFromHex(strings.Repeat("z", HexSize))
	require.Error(t, err)

	_, err = IDFromHex("")
	require.Error(t, err)
}

func TestHex_Lowercase(t *testing.T) {
	t.Parallel()

	var id ID
	for i := range id {
		id[i] = 0xAB
	}
	assert.Equal(t, strings.Repeat("ab", IDSize), id.Hex())
	assert.Equal(t, id.Hex(), id.String())
}

func TestSum_KnownVector(t *testing.T) {
	t.Parallel()

	id := Sum([]byte("hello"))
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", id.Hex())
}

func TestSum_MatchesStdlib(t *testing.T) {
	t.Parallel()

	data := []byte("the quick brown fox jumps over the lazy dog")
	want := sha256.Sum256(data)
	assert.Equal(t, want[:], Sum(data).Bytes())

	// Pooled hashers must reset cleanly between uses
	assert.Equal(t, Sum(data), Sum(data))
}
