package align

import (
	"slices"
	"sort"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
)

// AlignChapters aligns two whole books one chapter at a time, since verse
// ranges are only comparable within a chapter.
//
// Chapters present in both books form the groups. A paragraph of a chapter
// the other book lacks joins the group of the closest preceding shared
// chapter, or the first shared chapter when none precedes it. Books with no
// chapter in common are aligned as a single group.
func (a *Aligner) AlignChapters(sources, targets []*para.Paragraph) []Match {
	if len(sources) == 0 || len(targets) == 0 {
		return nil
	}

	shared := sharedChapters(sources, targets)
	if len(shared) == 0 {
		return a.Align(sources, targets)
	}

	sourceGroups := groupByChapter(sources, shared)
	targetGroups := groupByChapter(targets, shared)

	var matches []Match
	for i := range shared {
		matches = append(matches, a.Align(sourceGroups[i], targetGroups[i])...)
	}
	return matches
}

// AlignChapters aligns sources with targets chapter by chapter using the
// default Aligner.
func AlignChapters(sources, targets []*para.Paragraph) []Match {
	return defaultAligner.AlignChapters(sources, targets)
}

func sharedChapters(sources, targets []*para.Paragraph) []int {
	inSource := make(map[int]bool)
	for _, p := range sources {
		inSource[p.Position.Chapter] = true
	}
	seen := make(map[int]bool)
	var shared []int
	for _, p := range targets {
		ch := p.Position.Chapter
		if inSource[ch] && !seen[ch] {
			seen[ch] = true
			shared = append(shared, ch)
		}
	}
	slices.Sort(shared)
	return shared
}

// groupByChapter splits ps into one group per shared chapter, keeping book
// order within each group.
func groupByChapter(ps []*para.Paragraph, shared []int) [][]*para.Paragraph {
	groups := make([][]*para.Paragraph, len(shared))
	for _, p := range ps {
		i := sort.SearchInts(shared, p.Position.Chapter+1) - 1
		if i < 0 {
			i = 0
		}
		groups[i] = append(groups[i], p)
	}
	return groups
}
