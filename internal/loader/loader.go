// Package loader reads a dictionary's rules from its backing source: a
// plain-text file of "pattern=target" lines, a sqlite database described by
// a small JSON config document, or (for resolver-only formats) a single
// reference to a side module function. Each reader turns its source into
// the same Row shape so format construction downstream never needs to know
// which one produced it.
package loader

import (
	"os"
	"strings"

	"github.com/avitko/dicrector/internal/dicerr"
)

// Row is one raw (pattern, target) pair as read from source, before any
// pattern/target parsing.
type Row struct {
	Pattern string
	Target  string
}

// Reader loads the rows backing a dictionary from path.
type Reader func(path string) ([]Row, error)

const commentMarker = "#"

// ReadLines reads a plain-text dictionary file: blank lines and lines whose
// first non-space character is '#' are skipped entirely; a trailing " #..."
// comment on an otherwise valid line is right-trimmed before the line is
// split into pattern and target on its first '='.
func ReadLines(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dicerr.LoaderIOError(path, err)
	}

	var rows []Row
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
			continue
		}

		line = stripTrailingComment(line)
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}

		pattern, target, ok := splitRuleLine(line)
		if !ok {
			continue
		}
		rows = append(rows, Row{Pattern: pattern, Target: target})
	}
	return rows, nil
}

// stripTrailingComment removes a " #..." suffix some authors append to a
// rule line to annotate it, without touching a bare leading '#' (handled
// separately as a full-line comment).
func stripTrailingComment(line string) string {
	if idx := strings.Index(line, " "+commentMarker); idx >= 0 {
		return line[:idx]
	}
	return line
}

// splitRuleLine splits a "pattern=target" line on its first '=': targets
// for regex rules may legitimately contain '=' in a back-reference or
// literal text, so only the pattern side is required to be '='-free.
func splitRuleLine(line string) (pattern, target string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	return line[:idx], line[idx+1:], true
}

// ReadSingle reads a resolver-only dictionary file: its one significant
// line (blank lines and '#' comments skipped) names the side module
// function the dictionary's rule resolves through. It is used by the
// exts/extw formats, whose rules carry no literal target of their own.
func ReadSingle(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dicerr.LoaderIOError(path, err)
	}
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}
		return []Row{{Target: line}}, nil
	}
	return nil, dicerr.SideModuleMissing(path)
}
