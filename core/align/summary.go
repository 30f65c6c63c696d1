package align

import (
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
)

// Summary describes the shape of an alignment result.
type Summary struct {
	Pairs       int `json:"pairs"`
	Sources     int `json:"sources"`     // distinct source paragraphs matched
	Targets     int `json:"targets"`     // distinct target paragraphs matched
	OneToMany   int `json:"one_to_many"` // sources matched to more than one target
	ManyToOne   int `json:"many_to_one"` // targets matched to more than one source
	Rangeless   int `json:"rangeless"`   // pairs with a rangeless side
	Overlapping int `json:"overlapping"` // pairs whose ranges overlap
}

// Summarize counts the pairs in matches.
func Summarize(matches []Match) Summary {
	perSource := make(map[*para.Paragraph]int)
	perTarget := make(map[*para.Paragraph]int)
	sum := Summary{Pairs: len(matches)}

	for _, m := range matches {
		perSource[m.Source]++
		perTarget[m.Target]++
		switch {
		case !m.Source.HasRange() || !m.Target.HasRange():
			sum.Rangeless++
		case m.Source.Range.Overlaps(*m.Target.Range):
			sum.Overlapping++
		}
	}

	sum.Sources = len(perSource)
	sum.Targets = len(perTarget)
	for _, n := range perSource {
		if n > 1 {
			sum.OneToMany++
		}
	}
	for _, n := range perTarget {
		if n > 1 {
			sum.ManyToOne++
		}
	}
	return sum
}

// Uncovered returns the paragraphs of sources and targets that appear in no
// match. For the output of Align with both sides non-empty both are empty.
func Uncovered(sources, targets []*para.Paragraph, matches []Match) (missingSources, missingTargets []*para.Paragraph) {
	seenSource := make(map[*para.Paragraph]bool, len(sources))
	seenTarget := make(map[*para.Paragraph]bool, len(targets))
	for _, m := range matches {
		seenSource[m.Source] = true
		seenTarget[m.Target] = true
	}
	for _, p := range sources {
		if !seenSource[p] {
			missingSources = append(missingSources, p)
		}
	}
	for _, p := range targets {
		if !seenTarget[p] {
			missingTargets = append(missingTargets, p)
		}
	}
	return missingSources, missingTargets
}
