// Package rule binds a pattern to either a literal replacement target or a
// resolver callback, per spec.md §4.C (Rule and RuleResolved collapsed into
// one type parameterized by which of Target/Resolve is set).
package rule

import "github.com/avitko/dicrector/internal/pattern"

// Resolver computes a rule's replacement at match time instead of using a
// fixed literal target. It returns ok=false to decline the match (the node
// stays unchanged), which is how side-module-backed rules express "no
// opinion" for a given probe.
type Resolver func(probe string) (replacement string, ok bool)

// Rule is one dictionary entry: a pattern, and either a literal target or a
// resolver, plus its declaration order (used for indexer bookkeeping and
// deterministic iteration in Plain dictionaries).
type Rule struct {
	Pattern pattern.Pattern
	Target  string
	Resolve Resolver
	OrderNo int
}

// NewLiteral constructs a rule with a fixed replacement target.
func NewLiteral(p pattern.Pattern, target string, orderNo int) *Rule {
	return &Rule{Pattern: p, Target: target, OrderNo: orderNo}
}

// NewResolved constructs a rule whose replacement is computed by resolve.
func NewResolved(p pattern.Pattern, resolve Resolver, orderNo int) *Rule {
	return &Rule{Pattern: p, Resolve: resolve, OrderNo: orderNo}
}

// Apply matches probe against the rule's pattern. On a match it returns the
// rewritten text and true; resolver rules that decline the match return
// probe unchanged and false, same as a non-match.
func (r *Rule) Apply(probe string) (string, bool) {
	if !r.Pattern.Match(probe) {
		return probe, false
	}
	if r.Resolve == nil {
		return r.Pattern.Replace(r.Target, probe), true
	}
	replacement, ok := r.Resolve(probe)
	if !ok {
		return probe, false
	}
	return r.Pattern.Replace(replacement, probe), true
}
