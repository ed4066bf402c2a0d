// Package indexer provides the bounded-length key index over rule patterns
// (spec.md §4.B): given N rule patterns it builds a map that, for any probe
// string, returns a small sorted superset of the rule indices whose patterns
// could match — final confirmation is always left to the pattern itself.
package indexer

import (
	"sort"
	"strings"
	"sync"

	"github.com/avitko/dicrector/internal/dicerr"
)

// DefaultKeyLength is the build-time key length constant from spec.md §4.B.
// The known-good range is 7-9.
const DefaultKeyLength = 8

// Indexer maps a probe string to the sorted set of candidate rule indices.
// It is built by repeated calls to Add, then Freeze, then queried with
// Lookup. It is read-only (and therefore safe for concurrent reads) once
// frozen.
type Indexer struct {
	keyLength int

	byKind map[Wildcard]map[string][]int

	mu          sync.Mutex
	frozen      bool
	minKeySize  map[Wildcard]int
	permCache   map[int][]slicePlan
}

type slicePlan struct {
	start, stop int
	kinds       []Wildcard
}

// New creates an Indexer with the given key length. Callers normally pass
// DefaultKeyLength.
func New(keyLength int) *Indexer {
	byKind := make(map[Wildcard]map[string][]int, 4)
	for _, w := range values() {
		byKind[w] = make(map[string][]int)
	}
	return &Indexer{
		keyLength: keyLength,
		byKind:    byKind,
		permCache: make(map[int][]slicePlan),
	}
}

// Add registers a pattern's indexing projection under its declaration order
// number. It must be called before Freeze.
func (idx *Indexer) Add(p Indexed, orderNo int) {
	key := p.Key()
	if p.WildcardKind() == Left {
		key = lastRunes(key, idx.keyLength)
	} else {
		key = firstRunes(key, idx.keyLength)
	}
	// Index in lower case regardless of case sensitivity: confirmation by the
	// rule itself re-checks sensitivity, and one lowercase per probe beats
	// repeated multi-case index lookups.
	key = strings.ToLower(key)

	bucket := idx.byKind[p.WildcardKind()]
	bucket[key] = append(bucket[key], orderNo)
}

// Freeze finalizes the index for lookups. It may be called exactly once.
func (idx *Indexer) Freeze() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.frozen {
		return dicerr.IndexerAlreadyFrozen()
	}
	idx.minKeySize = make(map[Wildcard]int, 4)
	for kind, bucket := range idx.byKind {
		if len(bucket) == 0 {
			continue
		}
		min := -1
		for key := range bucket {
			n := runeLen(key)
			if min == -1 || n < min {
				min = n
			}
		}
		idx.minKeySize[kind] = min
	}
	idx.frozen = true
	return nil
}

// Lookup returns the ascending, deduplicated set of candidate rule indices
// for probe.
func (idx *Indexer) Lookup(probe string) []int {
	probe = strings.ToLower(probe)
	runes := []rune(probe)
	n := len(runes)

	candidates := make(map[int]struct{})
	for _, plan := range idx.slicePermutation(n) {
		key := string(runes[plan.start:plan.stop])
		for _, kind := range plan.kinds {
			bucket := idx.byKind[kind]
			if ids, ok := bucket[key]; ok {
				for _, i := range ids {
					candidates[i] = struct{}{}
				}
			}
		}
	}

	result := make([]int, 0, len(candidates))
	for i := range candidates {
		result = append(result, i)
	}
	sort.Ints(result)
	return result
}

// slicePermutation is a pure function of the probe length; results are
// memoized per Indexer instance.
func (idx *Indexer) slicePermutation(length int) []slicePlan {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if plan, ok := idx.permCache[length]; ok {
		return plan
	}

	var permutation []slicePlan
	maxWindow := idx.keyLength
	if length < maxWindow {
		maxWindow = length
	}
	for window := 1; window <= maxWindow; window++ {
		maxStart := length - window
		for start := 0; start <= maxStart; start++ {
			stop := start + window
			isBegin := start == 0
			isEnd := stop == length
			isFull := isBegin && stop-start == maxWindow

			var mask []Wildcard
			if isFull {
				mask = append(mask, None)
			}
			if isBegin {
				mask = append(mask, Right)
			}
			if isEnd {
				mask = append(mask, Left)
			}
			mask = append(mask, Both)

			var active []Wildcard
			for _, kind := range mask {
				minSize, ok := idx.minKeySize[kind]
				if ok && window >= minSize {
					active = append(active, kind)
				}
			}
			if len(active) > 0 {
				permutation = append(permutation, slicePlan{start: start, stop: stop, kinds: active})
			}
		}
	}
	idx.permCache[length] = permutation
	return permutation
}

func runeLen(s string) int { return len([]rune(s)) }

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
