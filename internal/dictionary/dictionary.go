// Package dictionary implements the three dictionary variants of spec.md
// §4.E over a fixed set of rules: Plain does a linear scan in declaration
// order, Index narrows candidates through an indexer.Indexer first, and
// Dicx does the same but keyed per word of the probe, applying every
// matching rule once in a single pass.
package dictionary

import (
	"fmt"
	"sort"

	"github.com/avitko/dicrector/internal/indexer"
	"github.com/avitko/dicrector/internal/rule"
	"github.com/avitko/dicrector/internal/tokenize"
)

// Dictionary applies its rules to probe, returning the rewritten text and
// whether anything changed.
type Dictionary interface {
	Apply(probe string) (string, bool)

	// RuleCount reports how many rules this dictionary was built from, for
	// the structured log fields SPEC_FULL.md §2.2 names.
	RuleCount() int
}

// Plain scans its rules in declaration order and stops at the first match.
type Plain struct {
	rules []*rule.Rule
}

// NewPlain builds a Plain dictionary over rules, already in declaration
// order.
func NewPlain(rules []*rule.Rule) *Plain {
	return &Plain{rules: rules}
}

// Apply implements Dictionary.
func (d *Plain) Apply(probe string) (string, bool) {
	for _, r := range d.rules {
		if next, ok := r.Apply(probe); ok {
			return next, true
		}
	}
	return probe, false
}

// RuleCount implements Dictionary.
func (d *Plain) RuleCount() int { return len(d.rules) }

// Index narrows candidates through an indexer.Indexer before trying each
// rule's full pattern match, for dictionaries too large to scan linearly.
// Every rule's pattern must also implement indexer.Indexed.
type Index struct {
	byOrder map[int]*rule.Rule
	idx     *indexer.Indexer
}

// NewIndex builds an Index dictionary over rules, already in declaration
// order.
func NewIndex(rules []*rule.Rule, keyLength int) (*Index, error) {
	idx := indexer.New(keyLength)
	byOrder := make(map[int]*rule.Rule, len(rules))
	for _, r := range rules {
		indexed, ok := r.Pattern.(indexer.Indexed)
		if !ok {
			return nil, fmt.Errorf("rule %d: pattern %T does not support indexing", r.OrderNo, r.Pattern)
		}
		idx.Add(indexed, r.OrderNo)
		byOrder[r.OrderNo] = r
	}
	if err := idx.Freeze(); err != nil {
		return nil, err
	}
	return &Index{byOrder: byOrder, idx: idx}, nil
}

// Apply implements Dictionary.
func (d *Index) Apply(probe string) (string, bool) {
	for _, id := range d.idx.Lookup(probe) {
		r, ok := d.byOrder[id]
		if !ok {
			continue
		}
		if next, ok := r.Apply(probe); ok {
			return next, true
		}
	}
	return probe, false
}

// RuleCount implements Dictionary.
func (d *Index) RuleCount() int { return len(d.byOrder) }

// Dicx indexes rules per word of the probe rather than per whole probe
// (dicx patterns are whole-sentence regexes, too varied in shape to key
// directly), then applies every distinct candidate rule once, in order,
// against the progressively rewritten text. It never re-scans the probe's
// words after a substitution: a second pass over rewritten text could find
// a rule's own output as a new candidate and loop forever.
type Dicx struct {
	byOrder map[int]*rule.Rule
	idx     *indexer.Indexer
}

// NewDicx builds a Dicx dictionary over rules, already in declaration
// order.
func NewDicx(rules []*rule.Rule, keyLength int) (*Dicx, error) {
	idx := indexer.New(keyLength)
	byOrder := make(map[int]*rule.Rule, len(rules))
	for _, r := range rules {
		indexed, ok := r.Pattern.(indexer.Indexed)
		if !ok {
			return nil, fmt.Errorf("rule %d: pattern %T does not support indexing", r.OrderNo, r.Pattern)
		}
		idx.Add(indexed, r.OrderNo)
		byOrder[r.OrderNo] = r
	}
	if err := idx.Freeze(); err != nil {
		return nil, err
	}
	return &Dicx{byOrder: byOrder, idx: idx}, nil
}

// Apply implements Dictionary.
func (d *Dicx) Apply(probe string) (string, bool) {
	seen := make(map[int]struct{})
	var candidates []int
	for _, w := range tokenize.Words(probe) {
		word := probe[w.Start:w.Stop]
		for _, id := range d.idx.Lookup(word) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, id)
		}
	}
	sort.Ints(candidates)

	result := probe
	changed := false
	for _, id := range candidates {
		r, ok := d.byOrder[id]
		if !ok {
			continue
		}
		if next, ok := r.Apply(result); ok {
			result = next
			changed = true
		}
	}
	return result, changed
}

// RuleCount implements Dictionary.
func (d *Dicx) RuleCount() int { return len(d.byOrder) }
