package align

import (
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
)

// AmbiguityPolicy decides how two facing rangeless runs are paired. Both
// slices are non-empty. The result must mention every paragraph of both runs.
type AmbiguityPolicy interface {
	Resolve(sources, targets []*para.Paragraph) []Match
}

// AmbiguityPolicyFunc adapts a function to AmbiguityPolicy.
type AmbiguityPolicyFunc func(sources, targets []*para.Paragraph) []Match

// Resolve calls f(sources, targets).
func (f AmbiguityPolicyFunc) Resolve(sources, targets []*para.Paragraph) []Match {
	return f(sources, targets)
}

// LastOfShorter pairs the runs index for index and attaches every surplus
// paragraph of the longer run to the last paragraph of the shorter one.
// The pairs are a guess; exact pairs need confirmation outside the aligner.
var LastOfShorter AmbiguityPolicy = AmbiguityPolicyFunc(lastOfShorter)

func lastOfShorter(sources, targets []*para.Paragraph) []Match {
	common := min(len(sources), len(targets))
	matches := make([]Match, 0, max(len(sources), len(targets)))

	for i := 0; i < common; i++ {
		matches = append(matches, Match{Source: sources[i], Target: targets[i]})
	}

	lastSource := sources[common-1]
	lastTarget := targets[common-1]
	for _, s := range sources[common:] {
		matches = append(matches, Match{Source: s, Target: lastTarget})
	}
	for _, t := range targets[common:] {
		matches = append(matches, Match{Source: lastSource, Target: t})
	}
	return matches
}
