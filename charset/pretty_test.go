package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyEdgeCases(t *testing.T) {
	assert.Equal(t, `""`, Pretty(CodePointSet{}))
	assert.Equal(t, `"a"`, Pretty(NewSet('a')))
}

func TestPrettyCompressesRuns(t *testing.T) {
	assert.Equal(t, `"a-z"`, Pretty(NewRange('a', 'z')))
	assert.Equal(t, `"ab"`, Pretty(NewSet('a', 'b')))
	assert.Equal(t, `"+-"`, Pretty(NewSet('+', '-')))
}

func TestPrettyMixesPrintableAndNonPrintable(t *testing.T) {
	s := NewSet('a', 'c', 'e', 0x1F600)
	got := Pretty(s)
	assert.Contains(t, got, "+")
	assert.Contains(t, got, "ace")
	assert.Contains(t, got, "128512")
}

func TestPrettyRoundtripsThroughParseKey(t *testing.T) {
	for _, original := range []CodePointSet{
		NewRange('0', '9'),
		NewSet('+', '-'),
		NewRange('a', 'f').Union(NewRange('A', 'F')),
	} {
		pretty := Pretty(original)
		unquoted := pretty[1 : len(pretty)-1]
		parsed, err := ParseKey(unquoted)
		require.NoError(t, err)
		assert.True(t, original.Equal(parsed), "roundtrip mismatch for %s", pretty)
	}
}

func TestParseKeyRange(t *testing.T) {
	s, err := ParseKey("0-9")
	require.NoError(t, err)
	assert.True(t, s.Equal(NewRange('0', '9')))

	s, err = ParseKey("a-fA-F")
	require.NoError(t, err)
	assert.True(t, s.Equal(NewRange('a', 'f').Union(NewRange('A', 'F'))))

	s, err = ParseKey("+-")
	require.NoError(t, err)
	assert.True(t, s.Equal(NewSet('+', '-')))
}
