package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords_SplitsOnWhitespaceAndPunctuation(t *testing.T) {
	spans := Words("the cat sat.")
	texts := make([]string, len(spans))
	for i, s := range spans {
		texts[i] = s.Text
	}
	assert.Equal(t, []string{"the", "cat", "sat"}, texts)
}

func TestWords_KeepsHyphenatedCompoundAsOneToken(t *testing.T) {
	spans := Words("по-научному")
	assert.Len(t, spans, 1)
	assert.Equal(t, "по-научному", spans[0].Text)
}

func TestWords_SpansReportByteOffsets(t *testing.T) {
	spans := Words("a bb")
	assert := assert.New(t)
	assert.Equal(Span{Start: 0, Stop: 1, Text: "a"}, spans[0])
	assert.Equal(Span{Start: 2, Stop: 4, Text: "bb"}, spans[1])
}

func TestSentences_SplitsOnTerminatingPunctuation(t *testing.T) {
	spans := Sentences("Hello world! How are you? Fine.")
	texts := make([]string, len(spans))
	for i, s := range spans {
		texts[i] = s.Text
	}
	assert.Equal(t, []string{"Hello world!", " How are you?", " Fine."}, texts)
}

func TestSentences_TrailingTextWithoutTerminatorKeepsItsOwnSpan(t *testing.T) {
	spans := Sentences("Hello world! trailing")
	assert.Len(t, spans, 2)
	assert.Equal(t, " trailing", spans[1].Text)
}

func TestSentences_NoTerminatorReturnsOneSpan(t *testing.T) {
	spans := Sentences("no terminator here")
	assert.Len(t, spans, 1)
	assert.Equal(t, "no terminator here", spans[0].Text)
}

func TestIsWordChar_LettersAndDigitsAreWordChars(t *testing.T) {
	assert.True(t, IsWordChar('a'))
	assert.True(t, IsWordChar('5'))
	assert.True(t, IsWordChar('я'))
}

func TestIsWordChar_PunctuationAndSpaceAreNot(t *testing.T) {
	assert.False(t, IsWordChar(' '))
	assert.False(t, IsWordChar('.'))
	assert.False(t, IsWordChar('-'))
}
