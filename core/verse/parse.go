package verse

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
)

// rangeGrammar is the participle grammar for range text.
// Examples: "5", "5b", "1-2", "4-5b", "5b-8"
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeGrammar struct {
	Start *indexGrammar `@@`
	End   *indexGrammar `( "-" @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type indexGrammar struct {
	Verse int  `@Int`
	Mid   bool `@Mid?`
}

var rangeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Mid", Pattern: midMarker},
	{Name: "Punct", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var rangeParser = participle.MustBuild[rangeGrammar](
	participle.Lexer(rangeLexer),
	participle.Elide("Whitespace"),
)

// ParseRange parses the canonical text form produced by Range.String.
// A lone index such as "5" or "5b" denotes the rest of that verse, so "5"
// parses as 5-6 and "5b" as 5b-6.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, errors.NewParse("verse range", "", "empty string")
	}

	parsed, err := rangeParser.ParseString("", s)
	if err != nil {
		return Range{}, &errors.ParseError{Format: "verse range", Message: fmt.Sprintf("invalid text %q", s), Err: err}
	}

	start := NewIndex(parsed.Start.Verse, parsed.Start.Mid)
	end := At(start.verse + 1)
	if parsed.End != nil {
		end = NewIndex(parsed.End.Verse, parsed.End.Mid)
	}
	return NewRange(start, end)
}

// ParseIndex parses a single index such as "5" or "5b".
func ParseIndex(s string) (Index, error) {
	r, err := ParseRange(s)
	if err != nil {
		return Index{}, err
	}
	if strings.Contains(s, "-") {
		return Index{}, errors.NewParse("verse index", "", fmt.Sprintf("unexpected range %q", s))
	}
	return r.start, nil
}
