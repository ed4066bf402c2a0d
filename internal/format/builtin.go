package format

import (
	"context"

	"github.com/avitko/dicrector/internal/dictionary"
	"github.com/avitko/dicrector/internal/indexer"
	"github.com/avitko/dicrector/internal/loader"
	"github.com/avitko/dicrector/internal/pattern"
	"github.com/avitko/dicrector/internal/rule"
	"github.com/avitko/dicrector/internal/sidemodule"
	"github.com/avitko/dicrector/internal/texttree"
)

// DicFormat: single-word Const/Wildcard patterns with a literal target,
// indexed for fast lookup. The everyday spelling-correction dictionary,
// applied at part level so a hyphenated compound's sub-words are each
// matched individually (spec.md §4.H).
func DicFormat() Depends {
	return Depends{
		Level:    texttree.KindPart,
		ReadRows: readRowsAuto,
		BuildPattern: func(raw string) (pattern.Pattern, error) {
			return pattern.ParseWildcard(raw)
		},
		BuildTarget: passthroughTarget,
		BuildDictionary: func(rules []*rule.Rule) (dictionary.Dictionary, error) {
			return dictionary.NewIndex(rules, indexer.DefaultKeyLength)
		},
	}
}

// DicxFormat: whole-sentence regex patterns derived from a word-boundary
// template, with a back-reference target, indexed per word.
func DicxFormat() Depends {
	return Depends{
		Level:    texttree.KindSentence,
		ReadRows: readRowsAuto,
		BuildPattern: func(raw string) (pattern.Pattern, error) {
			return pattern.ParseDicxPattern(raw)
		},
		BuildTarget: pattern.ParseDicxTarget,
		BuildDictionary: func(rules []*rule.Rule) (dictionary.Dictionary, error) {
			return dictionary.NewDicx(rules, indexer.DefaultKeyLength)
		},
	}
}

// RexFormat: free-form regex over a whole line, linearly scanned (a rex
// pattern has no natural indexing key). A row's target is normally a
// literal $N back-reference string; a target spelled "@name" instead
// routes that one rule through sideModules, naming a callable on the
// dictionary's side module (spec.md §6).
func RexFormat(sideModules *sidemodule.Registry) Depends {
	return Depends{
		Level:    texttree.KindLine,
		ReadRows: readRowsAuto,
		BuildPattern: func(raw string) (pattern.Pattern, error) {
			return pattern.ParseRegex(raw)
		},
		BuildTarget: passthroughTarget,
		Resolve:     sideModules.Resolve,
		BuildDictionary: func(rules []*rule.Rule) (dictionary.Dictionary, error) {
			return dictionary.NewPlain(rules), nil
		},
	}
}

// RexwFormat: the same free-form regex pattern as RexFormat, applied at
// word granularity instead of the whole line.
func RexwFormat(sideModules *sidemodule.Registry) Depends {
	d := RexFormat(sideModules)
	d.Level = texttree.KindToken
	return d
}

// ExtsFormat: a resolver-only dictionary applied to whole sentences, its
// single row naming the side module function to resolve through.
func ExtsFormat(sideModules *sidemodule.Registry) Depends {
	return Depends{
		Level: texttree.KindSentence,
		ReadRows: func(_ context.Context, path string) ([]loader.Row, error) {
			return loader.ReadSingle(path)
		},
		BuildPattern: func(string) (pattern.Pattern, error) {
			return pattern.NewFake(), nil
		},
		Resolve: sideModules.Resolve,
		BuildDictionary: func(rules []*rule.Rule) (dictionary.Dictionary, error) {
			return dictionary.NewPlain(rules), nil
		},
	}
}

// ExtwFormat: the same resolver-only dictionary as ExtsFormat, applied at
// word granularity.
func ExtwFormat(sideModules *sidemodule.Registry) Depends {
	d := ExtsFormat(sideModules)
	d.Level = texttree.KindToken
	return d
}
