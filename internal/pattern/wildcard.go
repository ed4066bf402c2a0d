package pattern

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/avitko/dicrector/internal/indexer"
)

// Wildcard is the Const/Wildcard pattern variant of spec.md §4.A: a literal
// key with an optional leading and/or trailing '*' and an optional leading
// '$' marking case sensitivity. A key with neither '*' is an exact match
// (the spec's Const case, collapsed into Wildcard's "none" kind).
type Wildcard struct {
	key           string
	caseSensitive bool
	kind          indexer.Wildcard
	g             glob.Glob
}

// ParseWildcard parses raw source syntax such as "$Some*", "*thing", or
// "*both*" into a Wildcard pattern.
func ParseWildcard(raw string) (*Wildcard, error) {
	s := raw
	caseSensitive := false
	if strings.HasPrefix(s, "$") {
		caseSensitive = true
		s = s[1:]
	}

	left := strings.HasPrefix(s, "*")
	if left {
		s = s[1:]
	}
	right := strings.HasSuffix(s, "*")
	if right {
		s = strings.TrimSuffix(s, "*")
	}

	key := s
	if !caseSensitive {
		key = strings.ToLower(key)
	}

	kind := wildcardKindFromFlags(left, right)
	return newWildcard(key, caseSensitive, kind), nil
}

func wildcardKindFromFlags(left, right bool) indexer.Wildcard {
	switch {
	case left && right:
		return indexer.Both
	case left:
		return indexer.Left
	case right:
		return indexer.Right
	default:
		return indexer.None
	}
}

func newWildcard(key string, caseSensitive bool, kind indexer.Wildcard) *Wildcard {
	return &Wildcard{
		key:           key,
		caseSensitive: caseSensitive,
		kind:          kind,
		g:             compileWildcardGlob(key, kind),
	}
}

// compileWildcardGlob compiles a gobwas/glob matcher for the common case
// where key contains no glob metacharacters of its own. Keys that do (rare,
// but the source dictionaries are free-form text) fall back to the manual
// prefix/suffix/contains relations in Match/Replace rather than risk
// mis-compiling a literal '*' or '?' found in the dictionary's own text.
func compileWildcardGlob(key string, kind indexer.Wildcard) glob.Glob {
	if strings.ContainsAny(key, `*?[]{}\`) {
		return nil
	}
	var pat string
	switch kind {
	case indexer.None:
		pat = key
	case indexer.Right:
		pat = key + "*"
	case indexer.Left:
		pat = "*" + key
	case indexer.Both:
		pat = "*" + key + "*"
	}
	g, err := glob.Compile(pat)
	if err != nil {
		return nil
	}
	return g
}

// CaseSensitive implements indexer.Indexed.
func (w *Wildcard) CaseSensitive() bool { return w.caseSensitive }

// WildcardKind implements indexer.Indexed.
func (w *Wildcard) WildcardKind() indexer.Wildcard { return w.kind }

// Key implements indexer.Indexed.
func (w *Wildcard) Key() string { return w.key }

// Match reports whether probe satisfies the wildcard relation. Matching is
// case-insensitive unless the pattern was declared case sensitive with a
// leading '$'.
func (w *Wildcard) Match(probe string) bool {
	s := probe
	if !w.caseSensitive {
		s = strings.ToLower(s)
	}
	if w.g != nil {
		return w.g.Match(s)
	}
	switch w.kind {
	case indexer.None:
		return s == w.key
	case indexer.Right:
		return strings.HasPrefix(s, w.key)
	case indexer.Left:
		return strings.HasSuffix(s, w.key)
	case indexer.Both:
		return strings.Contains(s, w.key)
	default:
		return false
	}
}

// Replace computes the substitution for probe. For "none" it returns
// replacement outright. For "right"/"both" it substitutes the first
// occurrence of key in probe. For "left" it keeps probe's prefix up to the
// trailing key and appends replacement. When the pattern is not case
// sensitive, the probe text this operates on has been lower-cased first, so
// the surrounding letters it returns may themselves be lower-cased — this
// mirrors the source engine and callers splicing text back into a sentence
// should expect it.
func (w *Wildcard) Replace(replacement, probe string) string {
	if w.kind == indexer.None {
		return replacement
	}

	s := probe
	if !w.caseSensitive {
		s = strings.ToLower(s)
	}

	switch w.kind {
	case indexer.Right, indexer.Both:
		return replaceFirst(s, w.key, replacement)
	case indexer.Left:
		runes := []rune(s)
		keyLen := len([]rune(w.key))
		if keyLen > len(runes) {
			keyLen = len(runes)
		}
		return string(runes[:len(runes)-keyLen]) + replacement
	default:
		return replacement
	}
}

func replaceFirst(s, old, repl string) string {
	idx := strings.Index(s, old)
	if idx == -1 {
		return s
	}
	return s[:idx] + repl + s[idx+len(old):]
}
