// Package texttree implements the lazy four-level text tree of spec.md §3
// and §4.F: Line contains Sentences, Sentence contains Tokens, Token
// contains Parts. A node's text is either authoritative (a leaf, or a node
// whose children haven't changed since it was last joined) or derived by
// joining its children; editing a node invalidates every ancestor's cached
// text without touching already-parsed children, so the next read rejoins
// from current child text instead of reparsing the whole branch from
// scratch.
package texttree

import (
	"strings"

	"github.com/avitko/dicrector/internal/tokenize"
)

// Kind identifies a node's level in the tree.
type Kind int

const (
	KindLine Kind = iota
	KindSentence
	KindToken
	KindPart
)

// String renders the kind for logging.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindSentence:
		return "sentence"
	case KindToken:
		return "token"
	case KindPart:
		return "part"
	default:
		return "unknown"
	}
}

// Node is one element of the tree. The zero value is not usable; construct
// a root with NewLine.
type Node struct {
	kind   Kind
	parent *Node

	text      string
	textFresh bool

	childs      []*Node
	gaps        []string
	childsFresh bool
}

// NewLine builds the root of a text tree from one raw line of input.
func NewLine(raw string) *Node {
	return newNode(KindLine, raw)
}

func newNode(kind Kind, text string) *Node {
	return &Node{kind: kind, text: text, textFresh: true}
}

// Kind reports the node's tree level.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the node's parent, or nil for a root Line node.
func (n *Node) Parent() *Node { return n.parent }

// Text returns the node's current text, rejoining from its children first
// if a descendant was edited since the last read.
func (n *Node) Text() string {
	if !n.textFresh {
		n.text = n.join()
		n.textFresh = true
	}
	return n.text
}

// SetText replaces the node's text outright. Any previously parsed children
// are discarded (they described the old text), and every ancestor is marked
// stale so the next read up the tree rejoins instead of serving cached text.
func (n *Node) SetText(text string) {
	n.text = text
	n.textFresh = true
	n.childsFresh = false
	n.childs = nil
	n.gaps = nil
	n.childChanged()
}

// childChanged marks every ancestor's text stale. It never reparses an
// ancestor's children: those are still valid, only their joined text is.
func (n *Node) childChanged() {
	for p := n.parent; p != nil; p = p.parent {
		p.textFresh = false
	}
}

// join rebuilds this node's text from its current children and the gap
// text recorded between them when they were parsed.
func (n *Node) join() string {
	childs := n.Childs()
	if len(childs) == 0 {
		return n.text
	}
	var b strings.Builder
	for i, c := range childs {
		if i < len(n.gaps) {
			b.WriteString(n.gaps[i])
		}
		b.WriteString(c.Text())
	}
	if len(n.gaps) > len(childs) {
		b.WriteString(n.gaps[len(childs)])
	}
	return b.String()
}

// Childs returns this node's children, parsing them from the node's current
// text on first access or after SetText invalidated the previous parse.
// Part nodes are leaves and always return nil.
func (n *Node) Childs() []*Node {
	if n.childsFresh {
		return n.childs
	}
	if n.kind == KindPart {
		n.childsFresh = true
		return nil
	}

	// With no parse cached, n.text already holds the node's current text;
	// going through Text() here would rejoin via Childs and never return.
	texts, gaps := split(n.kind, n.text)
	childKind := childKindOf(n.kind)
	childs := make([]*Node, 0, len(texts))
	for _, t := range texts {
		c := newNode(childKind, t)
		c.parent = n
		childs = append(childs, c)
	}
	n.childs = childs
	n.gaps = gaps
	n.childsFresh = true
	return n.childs
}

// Walk returns every descendant at level k, expanding children top-down.
// Calling Walk with n's own kind returns []*Node{n}.
func (n *Node) Walk(k Kind) []*Node {
	if n.kind == k {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Childs() {
		out = append(out, c.Walk(k)...)
	}
	return out
}

// FirstWord returns a Sentence's first Token child, or nil if the sentence
// has none (or n is not a Sentence).
func (n *Node) FirstWord() *Node {
	if n.kind != KindSentence {
		return nil
	}
	childs := n.Childs()
	if len(childs) == 0 {
		return nil
	}
	return childs[0]
}

// IsFirstWord reports whether n is its parent Sentence's first word. Rules
// that should only fire sentence-initially (capitalization-sensitive
// dictionaries) key off this rather than position zero in the raw line, so
// it survives edits to earlier tokens.
func (n *Node) IsFirstWord() bool {
	if n.kind != KindToken || n.parent == nil {
		return false
	}
	return n.parent.FirstWord() == n
}

func childKindOf(k Kind) Kind {
	switch k {
	case KindLine:
		return KindSentence
	case KindSentence:
		return KindToken
	default:
		return KindPart
	}
}

func split(kind Kind, text string) ([]string, []string) {
	switch kind {
	case KindLine:
		return spansToTextsAndGaps(text, tokenize.Sentences(text))
	case KindSentence:
		return spansToTextsAndGaps(text, tokenize.Words(text))
	case KindToken:
		return splitToken(text)
	default:
		return nil, []string{text}
	}
}

func spansToTextsAndGaps(text string, spans []tokenize.Span) ([]string, []string) {
	texts := make([]string, len(spans))
	gaps := make([]string, len(spans)+1)
	prev := 0
	for i, sp := range spans {
		gaps[i] = text[prev:sp.Start]
		texts[i] = text[sp.Start:sp.Stop]
		prev = sp.Stop
	}
	gaps[len(spans)] = text[prev:]
	return texts, gaps
}

// splitToken splits a token on literal '-', joining hyphenated compounds
// ("по-научному") back together on rejoin. A token with no hyphen still
// yields a single Part equal to the whole token, so Token always has
// uniform tree depth below it.
func splitToken(text string) ([]string, []string) {
	parts := strings.Split(text, "-")
	gaps := make([]string, len(parts)+1)
	for i := 1; i < len(parts); i++ {
		gaps[i] = "-"
	}
	return parts, gaps
}
