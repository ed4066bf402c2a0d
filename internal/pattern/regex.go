package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Regex is the free-form regular-expression pattern variant of spec.md
// §4.A. A leading '$' marks the pattern case sensitive; otherwise it is
// compiled with Go's inline case-insensitive flag. A single literal space in
// the source is widened to "\s", so it matches any one whitespace character
// (a space, a tab, ...) but not a run of several.
type Regex struct {
	re            *regexp.Regexp
	caseSensitive bool
}

// ParseRegex compiles raw source syntax into a Regex pattern.
func ParseRegex(raw string) (*Regex, error) {
	s := raw
	caseSensitive := false
	if strings.HasPrefix(s, "$") {
		caseSensitive = true
		s = s[1:]
	}

	s = strings.ReplaceAll(s, " ", `\s`)
	if !caseSensitive {
		s = "(?i)" + s
	}

	re, err := regexp.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("compiling regex pattern %q: %w", raw, err)
	}
	return &Regex{re: re, caseSensitive: caseSensitive}, nil
}

// Match reports whether the compiled expression matches anywhere in probe.
func (r *Regex) Match(probe string) bool { return r.re.MatchString(probe) }

// Replace runs the expression's replacement against probe. replacement may
// use Go's "$1"/"${name}" back-reference syntax.
func (r *Regex) Replace(replacement, probe string) string {
	return r.re.ReplaceAllString(probe, replacement)
}
