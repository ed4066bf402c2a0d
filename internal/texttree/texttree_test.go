package texttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine_TextRoundTrips(t *testing.T) {
	root := NewLine("Hello, world! How are you?")
	assert.Equal(t, "Hello, world! How are you?", root.Text())
}

func TestNode_Childs_SplitsIntoSentences(t *testing.T) {
	root := NewLine("Hello, world! How are you?")
	sentences := root.Walk(KindSentence)
	require.Len(t, sentences, 2)
	assert.Equal(t, "Hello, world!", sentences[0].Text())
	assert.Equal(t, " How are you?", sentences[1].Text())
}

func TestNode_Childs_SplitsIntoTokens(t *testing.T) {
	root := NewLine("Hello, world!")
	tokens := root.Walk(KindToken)
	require.Len(t, tokens, 2)
	assert.Equal(t, "Hello", tokens[0].Text())
	assert.Equal(t, "world", tokens[1].Text())
}

func TestNode_Childs_SplitsHyphenatedTokenIntoParts(t *testing.T) {
	root := NewLine("по-научному")
	parts := root.Walk(KindPart)
	require.Len(t, parts, 2)
	assert.Equal(t, "по", parts[0].Text())
	assert.Equal(t, "научному", parts[1].Text())
}

func TestNode_SetText_RejoinsAncestorsWithoutReparsingSiblings(t *testing.T) {
	root := NewLine("Hello, cruel world!")
	tokens := root.Walk(KindToken)
	require.Len(t, tokens, 3)

	tokens[1].SetText("nice")

	assert.Equal(t, "Hello, nice world!", root.Text())
	// The untouched token's own node identity survives the edit.
	assert.Equal(t, "Hello", tokens[0].Text())
	assert.Equal(t, "world", tokens[2].Text())
}

func TestNode_SetText_InvalidatesOwnChildren(t *testing.T) {
	root := NewLine("cat")
	token := root.Walk(KindToken)[0]
	_ = token.Walk(KindPart) // force a parse of the old children

	token.SetText("dog-house")

	parts := token.Walk(KindPart)
	require.Len(t, parts, 2)
	assert.Equal(t, "dog", parts[0].Text())
	assert.Equal(t, "house", parts[1].Text())
}

func TestNode_FirstWord_AndIsFirstWord(t *testing.T) {
	root := NewLine("Hello world")
	sentence := root.Walk(KindSentence)[0]
	tokens := sentence.Walk(KindToken)
	require.Len(t, tokens, 2)

	assert.Equal(t, tokens[0], sentence.FirstWord())
	assert.True(t, tokens[0].IsFirstWord())
	assert.False(t, tokens[1].IsFirstWord())
}

func TestNode_Walk_OwnKindReturnsSelf(t *testing.T) {
	root := NewLine("hi")
	assert.Equal(t, []*Node{root}, root.Walk(KindLine))
}

func TestNode_PartNodes_HaveNoChildren(t *testing.T) {
	root := NewLine("cat")
	part := root.Walk(KindPart)[0]
	assert.Nil(t, part.Childs())
}
