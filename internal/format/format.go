// Package format is the format registry of spec.md §4.H: for each
// dictionary file extension it holds the Depends bundle of collaborators
// needed to turn that file into a dictionary.Dictionary — how to read its
// rows, how to build a pattern and a target from each row (or route to a
// side module resolver instead), and which dictionary variant to assemble
// the resulting rules into.
package format

import (
	"context"
	"strings"

	"github.com/avitko/dicrector/internal/dicerr"
	"github.com/avitko/dicrector/internal/dictionary"
	"github.com/avitko/dicrector/internal/loader"
	"github.com/avitko/dicrector/internal/pattern"
	"github.com/avitko/dicrector/internal/rule"
	"github.com/avitko/dicrector/internal/sidemodule"
	"github.com/avitko/dicrector/internal/texttree"
)

// Level is the tree granularity a format's rules are matched against.
type Level = texttree.Kind

// Depends bundles the collaborators a format needs to load a dictionary
// file, mirroring the LoadDepends/Formats split of the source engine.
type Depends struct {
	// Level is the node kind this format's rules should be applied to.
	Level Level

	// ReadRows loads the file's raw (pattern, target) rows.
	ReadRows func(ctx context.Context, path string) ([]loader.Row, error)

	// BuildPattern parses a row's raw pattern text.
	BuildPattern func(raw string) (pattern.Pattern, error)

	// BuildTarget parses a row's raw target text into a literal
	// replacement. Nil for resolver-only formats, which use Resolve
	// instead.
	BuildTarget func(raw string) (string, error)

	// Resolve looks up the side module resolver a row's target field
	// names. Nil for formats whose rows never name a resolver; rex/rexw
	// set it alongside BuildTarget for their "@name" rows.
	Resolve func(ref string) (sidemodule.Resolver, error)

	// BuildDictionary assembles the format's rules into a Dictionary.
	BuildDictionary func(rules []*rule.Rule) (dictionary.Dictionary, error)
}

// Load reads path with d's rows reader, builds one rule per row, and hands
// the result to d's dictionary constructor.
func Load(ctx context.Context, path string, d Depends) (dictionary.Dictionary, error) {
	rows, err := d.ReadRows(ctx, path)
	if err != nil {
		return nil, err
	}

	rules := make([]*rule.Rule, 0, len(rows))
	for i, row := range rows {
		p, err := d.BuildPattern(row.Pattern)
		if err != nil {
			return nil, err
		}

		// A resolver-only format (exts/extw, BuildTarget nil) names its
		// resolver in the whole target field. A literal format that also
		// wires Resolve (rex/rexw) instead opts a single row into a
		// resolver via a "@name" target, spec.md §6 — every other row
		// keeps its literal $N back-reference target.
		ref, isRef := strings.CutPrefix(row.Target, "@")
		switch {
		case d.Resolve != nil && d.BuildTarget == nil:
			resolve, err := d.Resolve(row.Target)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule.NewResolved(p, rule.Resolver(resolve), i))
		case d.Resolve != nil && isRef:
			resolve, err := d.Resolve(ref)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule.NewResolved(p, rule.Resolver(resolve), i))
		default:
			target, err := d.BuildTarget(row.Target)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule.NewLiteral(p, target, i))
		}
	}

	return d.BuildDictionary(rules)
}

// Registry maps a dictionary file's extension to the Depends bundle that
// loads it.
type Registry struct {
	byExt map[string]Depends
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Depends)}
}

// Register binds ext (including its leading dot, e.g. ".dic") to d.
func (r *Registry) Register(ext string, d Depends) {
	r.byExt[ext] = d
}

// RegisterDefaults registers the six built-in formats. sideModules backs
// the resolver-only exts/extw formats.
func (r *Registry) RegisterDefaults(sideModules *sidemodule.Registry) {
	r.Register(".dic", DicFormat())
	r.Register(".dicx", DicxFormat())
	r.Register(".rex", RexFormat(sideModules))
	r.Register(".rexw", RexwFormat(sideModules))
	r.Register(".exts", ExtsFormat(sideModules))
	r.Register(".extw", ExtwFormat(sideModules))
}

// For returns the Depends bundle registered for ext.
func (r *Registry) For(ext string) (Depends, error) {
	d, ok := r.byExt[ext]
	if !ok {
		return Depends{}, dicerr.FormatUnknown(ext)
	}
	return d, nil
}

// readRowsAuto dispatches to the sqlite-config reader when path ends in
// ".json", and to the plain-text line reader otherwise. Corrector.Load picks
// the format from the path's own extension and no format is registered for
// ".json", so only a direct call to Load with such a path reaches the
// sqlite branch.
func readRowsAuto(ctx context.Context, path string) ([]loader.Row, error) {
	if strings.HasSuffix(path, ".json") {
		return loader.ReadSQLite(ctx, path)
	}
	return loader.ReadLines(path)
}

func passthroughTarget(raw string) (string, error) { return raw, nil }
