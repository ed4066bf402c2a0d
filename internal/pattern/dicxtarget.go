package pattern

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// dicxTargetLexer tokenizes a dicx target template into '*' markers and the
// literal runs between them.
var dicxTargetLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Star", Pattern: `\*`},
	{Name: "Text", Pattern: `[^*]+`},
})

// dicxTargetSegment is one piece of a target template: either a back
// reference marker or a literal run.
type dicxTargetSegment struct {
	Star string `parser:"( @'*'"`
	Text string `parser:"| @Text )"`
}

// dicxTargetAST is the full parsed template.
type dicxTargetAST struct {
	Segments []*dicxTargetSegment `parser:"@@*"`
}

// targetParser is the singleton participle parser for dicx target templates.
var targetParser *participle.Parser[dicxTargetAST]

func init() {
	var err error
	targetParser, err = participle.Build[dicxTargetAST](
		participle.Lexer(dicxTargetLexer),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build dicx target parser: %v", err))
	}
}

// ParseDicxTarget rewrites a dicx target template such as "по *ому" into a
// Go regexp replacement string ("по ${1}ому"), with each '*' numbered in
// left-to-right order to line up with the capture groups
// ParseDicxPattern's deriveDicxRegex produces for the matching pattern
// template. The source engine this is ported from rewrote "$N" into Python
// re's "\N" syntax at this same step; Go's regexp already accepts "$N"
// natively, so that rewrite has no counterpart here.
func ParseDicxTarget(raw string) (string, error) {
	ast, err := targetParser.ParseString("", raw)
	if err != nil {
		return "", fmt.Errorf("parsing dicx target %q: %w", raw, err)
	}

	var b strings.Builder
	group := 0
	for _, seg := range ast.Segments {
		if seg.Star != "" {
			group++
			fmt.Fprintf(&b, "${%d}", group)
			continue
		}
		b.WriteString(strings.ReplaceAll(seg.Text, "$", "$$"))
	}
	return b.String(), nil
}
