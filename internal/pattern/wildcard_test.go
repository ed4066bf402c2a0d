package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitko/dicrector/internal/indexer"
)

func TestParseWildcard_Kinds(t *testing.T) {
	cases := []struct {
		raw           string
		wantKey       string
		wantKind      indexer.Wildcard
		caseSensitive bool
	}{
		{"hello", "hello", indexer.None, false},
		{"hello*", "hello", indexer.Right, false},
		{"*hello", "hello", indexer.Left, false},
		{"*hello*", "hello", indexer.Both, false},
		{"$Hello", "Hello", indexer.None, true},
		{"$Hello*", "Hello", indexer.Right, true},
	}

	for _, tc := range cases {
		w, err := ParseWildcard(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.wantKey, w.Key(), tc.raw)
		assert.Equal(t, tc.wantKind, w.WildcardKind(), tc.raw)
		assert.Equal(t, tc.caseSensitive, w.CaseSensitive(), tc.raw)
	}
}

func TestWildcard_Match(t *testing.T) {
	none, err := ParseWildcard("cat")
	require.NoError(t, err)
	assert.True(t, none.Match("cat"))
	assert.True(t, none.Match("CAT"))
	assert.False(t, none.Match("cats"))

	right, err := ParseWildcard("cat*")
	require.NoError(t, err)
	assert.True(t, right.Match("catalog"))
	assert.False(t, right.Match("bobcat"))

	left, err := ParseWildcard("*cat")
	require.NoError(t, err)
	assert.True(t, left.Match("bobcat"))
	assert.False(t, left.Match("catalog"))

	both, err := ParseWildcard("*cat*")
	require.NoError(t, err)
	assert.True(t, both.Match("bobcatalog"))
	assert.False(t, both.Match("dog"))
}

func TestWildcard_Match_CaseSensitive(t *testing.T) {
	p, err := ParseWildcard("$Cat")
	require.NoError(t, err)
	assert.True(t, p.Match("Cat"))
	assert.False(t, p.Match("cat"))
}

func TestWildcard_Replace_None(t *testing.T) {
	p, err := ParseWildcard("cat")
	require.NoError(t, err)
	assert.Equal(t, "dog", p.Replace("dog", "cat"))
}

func TestWildcard_Replace_Right(t *testing.T) {
	p, err := ParseWildcard("cat*")
	require.NoError(t, err)
	assert.Equal(t, "dogalog", p.Replace("dog", "catalog"))
}

func TestWildcard_Replace_Left(t *testing.T) {
	p, err := ParseWildcard("*cat")
	require.NoError(t, err)
	assert.Equal(t, "bobdog", p.Replace("dog", "bobcat"))
}

func TestWildcard_Replace_Both(t *testing.T) {
	p, err := ParseWildcard("*cat*")
	require.NoError(t, err)
	assert.Equal(t, "bobdogalog", p.Replace("dog", "bobcatalog"))
}

func TestWildcard_Match_LiteralGlobMetacharacter(t *testing.T) {
	// A key that itself contains a glob metacharacter must be matched
	// literally, not reinterpreted as glob syntax.
	p, err := ParseWildcard("a[b]c")
	require.NoError(t, err)
	assert.True(t, p.Match("a[b]c"))
	assert.False(t, p.Match("abc"))
}
