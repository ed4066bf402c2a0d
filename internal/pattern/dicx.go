package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/avitko/dicrector/internal/dicerr"
	"github.com/avitko/dicrector/internal/indexer"
	"github.com/avitko/dicrector/internal/tokenize"
)

// dicxPlaceholder stands in for '*' while the template is tokenized, so the
// tokenizer's word-boundary rules don't split the pattern at its own
// wildcards. It must be a character tokenize.Words treats as word-internal.
const dicxPlaceholder = "`"

// Dicx is the compound pattern of spec.md §4.A: a whole-template regular
// expression paired with a derived Wildcard key sub-pattern used purely for
// indexing. Dicx embeds Regex for Match/Replace and exposes the key
// sub-pattern's projection so it can sit in an indexer.Indexer alongside
// plain Wildcard rules.
type Dicx struct {
	*Regex
	key *Wildcard
}

// ParseDicxPattern parses a dicx template such as "по-*" into a Dicx
// pattern: a regex built from the template's wildcard structure, and a key
// sub-pattern chosen from the template's tokens for indexing.
func ParseDicxPattern(raw string) (*Dicx, error) {
	s := raw
	caseSensitive := false
	if strings.HasPrefix(s, "$") {
		caseSensitive = true
		s = s[1:]
	}

	key, err := deriveDicxKey(s, caseSensitive)
	if err != nil {
		return nil, err
	}

	regexSrc := deriveDicxRegex(s)
	if !caseSensitive {
		regexSrc = "(?i)" + regexSrc
	}
	re, err := regexp.Compile(regexSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling dicx pattern %q: %w", raw, err)
	}

	return &Dicx{Regex: &Regex{re: re, caseSensitive: caseSensitive}, key: key}, nil
}

// CaseSensitive implements indexer.Indexed via the derived key sub-pattern.
func (d *Dicx) CaseSensitive() bool { return d.key.CaseSensitive() }

// WildcardKind implements indexer.Indexed via the derived key sub-pattern.
func (d *Dicx) WildcardKind() indexer.Wildcard { return d.key.WildcardKind() }

// Key implements indexer.Indexed via the derived key sub-pattern.
func (d *Dicx) Key() string { return d.key.Key() }

// deriveDicxKey tokenizes the template (after hiding '*' behind a
// word-internal placeholder) and picks the token that will index most
// selectively: preferring an exact token, then a right-open, then a
// left-open, then a both-open one, and the longest key on a tie.
func deriveDicxKey(template string, caseSensitive bool) (*Wildcard, error) {
	substituted := strings.ReplaceAll(template, "*", dicxPlaceholder)

	var candidates []*Wildcard
	for _, span := range tokenize.Words(substituted) {
		original := template[span.Start:span.Stop]
		if original == "" {
			continue
		}
		wp, err := ParseWildcard(original)
		if err != nil {
			continue
		}
		candidates = append(candidates, wp)
	}

	if len(candidates) == 0 {
		return nil, dicerr.PatternMalformed(template)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if dicxKeyBetter(c, best) {
			best = c
		}
	}

	best.caseSensitive = caseSensitive
	if !caseSensitive {
		best.key = strings.ToLower(best.key)
		best.g = compileWildcardGlob(best.key, best.kind)
	}
	return best, nil
}

func dicxKeyBetter(a, b *Wildcard) bool {
	ra, rb := wildcardRank(a.WildcardKind()), wildcardRank(b.WildcardKind())
	if ra != rb {
		return ra < rb
	}
	return utf8.RuneCountInString(a.Key()) > utf8.RuneCountInString(b.Key())
}

// wildcardRank orders wildcard kinds by indexing selectivity: an exact key
// narrows a bucket the most, a both-open key the least.
func wildcardRank(w indexer.Wildcard) int {
	switch w {
	case indexer.None:
		return 0
	case indexer.Right:
		return 1
	case indexer.Left:
		return 2
	case indexer.Both:
		return 3
	default:
		return 99
	}
}

// deriveDicxRegex turns the template into a regexp source: when the template
// starts or ends with '*', a word boundary is anchored on the other side
// (a template with no outer '*' gets no anchors), each '*' becomes a
// greedy non-space capture group, and the two characters with special
// meaning in a dictionary's own text ('.' and '?') are escaped literally.
func deriveDicxRegex(template string) string {
	leading := strings.HasPrefix(template, "*")
	trailing := strings.HasSuffix(template, "*")

	body := template
	if leading || trailing {
		var b strings.Builder
		if !leading {
			b.WriteString(`\b`)
		}
		b.WriteString(body)
		if !trailing {
			b.WriteString(`\b`)
		}
		body = b.String()
	}

	body = strings.ReplaceAll(body, "*", `(\S*)`)
	body = strings.ReplaceAll(body, ".", `\.`)
	body = strings.ReplaceAll(body, "?", `\?`)
	return body
}
