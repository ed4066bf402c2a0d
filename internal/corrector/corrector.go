// Package corrector implements the Corrector driver of spec.md §4.G: it
// holds an ordered list of loaded dictionaries, each bound to the tree
// level it was written for, and rewrites a line of text by walking that
// level's nodes through the dictionary and splicing any changes back into
// the tree.
package corrector

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/avitko/dicrector/internal/dictionary"
	"github.com/avitko/dicrector/internal/format"
	"github.com/avitko/dicrector/internal/logging"
	"github.com/avitko/dicrector/internal/texttree"
)

// boundDictionary is one loaded dictionary together with the level it
// applies to.
type boundDictionary struct {
	name  string
	path  string
	ext   string
	level texttree.Kind
	dict  dictionary.Dictionary
}

// Corrector applies its loaded dictionaries to a line of text, in the
// order they were loaded.
type Corrector struct {
	dicts   []boundDictionary
	logger  *slog.Logger
	metrics *Metrics
}

// New builds an empty Corrector. logger and metrics may be nil; metrics
// being nil simply means nothing is recorded, not an error.
func New(logger *slog.Logger, metrics *Metrics) *Corrector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Corrector{logger: logger, metrics: metrics}
}

// Load reads the dictionary file at path using the format registered for
// its extension and appends it to the Corrector under name.
func (c *Corrector) Load(ctx context.Context, registry *format.Registry, name, path string) error {
	ext := filepath.Ext(path)
	depends, err := registry.For(ext)
	if err != nil {
		return err
	}

	dict, err := format.Load(ctx, path, depends)
	if err != nil {
		return err
	}

	c.dicts = append(c.dicts, boundDictionary{name: name, path: path, ext: ext, level: depends.Level, dict: dict})
	return nil
}

// Execute rewrites one line of text by running every loaded dictionary, in
// load order, over the nodes at its level.
func (c *Corrector) Execute(ctx context.Context, line string) (string, error) {
	runID := ulid.Make().String()
	logger := c.logger.With("run_id", runID)

	root := texttree.NewLine(line)
	for _, bd := range c.dicts {
		start := time.Now()
		changed := c.applyDictionary(root, bd)
		elapsed := time.Since(start)
		c.metrics.observeDictionary(bd.name, changed, elapsed)

		attrs := logging.DictionaryAttrs(bd.path, bd.ext, bd.level.String(), bd.dict.RuleCount(), elapsed)
		attrs = append(attrs, slog.String("dictionary", bd.name), slog.Int("changed", changed))
		logger.LogAttrs(ctx, slog.LevelDebug, "dictionary applied", attrs...)
	}

	return root.Text(), nil
}

func (c *Corrector) applyDictionary(root *texttree.Node, bd boundDictionary) int {
	changed := 0
	for _, n := range nodesForLevel(root, bd.level) {
		next, ok := bd.dict.Apply(n.Text())
		if !ok {
			continue
		}
		n.SetText(next)
		changed++
	}
	return changed
}

// nodesForLevel returns the nodes a dictionary at level should run over.
// Part-level dictionaries process every word (Token) node, plus the Parts
// of each hyphenated word: a rule written against a compound's sub-word
// still needs to see the whole word it could also match as one piece. An
// unhyphenated word is seen once, as its Token.
func nodesForLevel(root *texttree.Node, level texttree.Kind) []*texttree.Node {
	if level == texttree.KindPart {
		tokens := root.Walk(texttree.KindToken)
		nodes := append([]*texttree.Node(nil), tokens...)
		for _, t := range tokens {
			if parts := t.Childs(); len(parts) > 1 {
				nodes = append(nodes, parts...)
			}
		}
		return nodes
	}
	return root.Walk(level)
}
