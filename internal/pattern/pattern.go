// Package pattern implements the polymorphic Pattern variants of spec.md
// §4.A: Fake, Wildcard (which subsumes the spec's Const as the wildcard-none
// case), Regex, and the compound Dicx pattern. Every variant decides whether
// it matches a probe string and computes a replacement for it; none of them
// perform runtime type tests on each other, consistent with spec.md's design
// notes on modeling Pattern as a tagged variant behind a small interface.
package pattern

// Pattern is the capability set every pattern variant implements.
type Pattern interface {
	// Match reports whether the pattern matches probe.
	Match(probe string) bool
	// Replace computes the replacement text for probe given replacement
	// (a literal target string, or a resolver's output for RuleResolved).
	Replace(replacement, probe string) string
}

// Fake always matches; Replace returns replacement verbatim. It backs the
// exts/extw formats, whose rules are entirely resolver-driven.
type Fake struct{}

// NewFake constructs a Fake pattern.
func NewFake() Fake { return Fake{} }

// Match always reports true.
func (Fake) Match(string) bool { return true }

// Replace returns replacement unchanged.
func (Fake) Replace(replacement, _ string) string { return replacement }
