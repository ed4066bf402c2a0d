// Package tokenize splits raw text into sentence and word spans for the
// texttree package. It is a standard-library regexp implementation: the
// retrieved example repos carry no natural-language segmentation library
// (the teacher's domain is a MUD server, not text processing), so this is
// one of the few ambient concerns built directly on regexp rather than a
// third-party dependency — recorded as such in DESIGN.md.
package tokenize

import "regexp"

// Span locates a token within its source string by byte offset.
type Span struct {
	Start, Stop int
	Text        string
}

// wordRE matches a run of letters/digits, allowing a hyphen or backtick to
// join two such runs without breaking the token. Backtick is also the
// placeholder pattern.ParseDicxPattern substitutes for '*' before tokenizing
// a dicx template, so the same word boundaries apply to key derivation. The
// hyphen join means a hyphenated compound ("по-научному") tokenizes as one
// Token here; splitting it into Parts is texttree's job, one level down.
var wordRE = regexp.MustCompile("[\\p{L}\\p{N}]+(?:[-`][\\p{L}\\p{N}]+)*")

// Words returns the word spans of s in order.
func Words(s string) []Span {
	locs := wordRE.FindAllStringIndex(s, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{Start: loc[0], Stop: loc[1], Text: s[loc[0]:loc[1]]})
	}
	return spans
}

// sentenceEndRE matches a run of sentence-terminating punctuation.
var sentenceEndRE = regexp.MustCompile(`[.!?]+`)

// Sentences splits s into sentence spans, each including its terminating
// punctuation and any text that precedes the next terminator.
func Sentences(s string) []Span {
	var spans []Span
	start := 0
	for _, m := range sentenceEndRE.FindAllStringIndex(s, -1) {
		end := m[1]
		spans = append(spans, Span{Start: start, Stop: end, Text: s[start:end]})
		start = end
	}
	if start < len(s) {
		spans = append(spans, Span{Start: start, Stop: len(s), Text: s[start:]})
	}
	return spans
}

// IsWordChar reports whether r can appear inside a word token.
func IsWordChar(r rune) bool {
	return matchesWordClass(r)
}

func matchesWordClass(r rune) bool {
	return wordRE.MatchString(string(r))
}
