package align

import (
	"errors"
	"log/slog"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
)

// ErrNothingToAlign is returned by callers of Align when one side is empty.
// Align itself only returns no matches.
var ErrNothingToAlign = errors.New("nothing to align: source or target has no paragraphs")

// Match pairs a source paragraph with a target paragraph.
type Match struct {
	Source *para.Paragraph
	Target *para.Paragraph
}

// Aligner pairs the paragraphs of two books. The zero value is ready to use
// with the LastOfShorter policy and no logging.
type Aligner struct {
	// Policy resolves facing rangeless runs. Nil means LastOfShorter.
	Policy AmbiguityPolicy

	// Logger receives one debug record per step. Nil disables logging.
	Logger *slog.Logger
}

var defaultAligner Aligner

// Align pairs sources with targets using the default Aligner.
func Align(sources, targets []*para.Paragraph) []Match {
	return defaultAligner.Align(sources, targets)
}

// Align pairs every paragraph of sources with at least one paragraph of
// targets and vice versa. Both slices must be in book order. Matches are
// returned in the order they are found. If either slice is empty the result
// is nil.
func (a *Aligner) Align(sources, targets []*para.Paragraph) []Match {
	if len(sources) == 0 || len(targets) == 0 {
		return nil
	}

	var (
		matches []Match
		c       Cursor
	)
	// A paragraph used as an anchor before it is consumed can be paired
	// with the same partner again by a later step.
	seen := make(map[Match]bool)
	for {
		state, next, found := a.Step(sources, targets, c)
		if state == Done {
			return matches
		}
		if a.Logger != nil {
			a.Logger.Debug("alignment_step",
				"state", state.String(),
				"next_source", c.NextSource,
				"next_target", c.NextTarget,
				"matches", len(found),
			)
		}
		for _, m := range found {
			if !seen[m] {
				seen[m] = true
				matches = append(matches, m)
			}
		}
		c = next
	}
}

// Step performs the transition for the state at cursor c and returns that
// state, the advanced cursor and the matches found. For Done it returns c
// unchanged and no matches. Every other state advances at least one cursor.
func (a *Aligner) Step(sources, targets []*para.Paragraph, c Cursor) (State, Cursor, []Match) {
	state, sourceRun, targetRun := Classify(sources, targets, c)

	switch state {
	case BothRanged:
		next, found := walkRanged(sources, targets, c)
		return state, next, found

	case TargetRunOnly:
		owner := anchor(sources, c.NextSource)
		run := targets[c.NextTarget : c.NextTarget+targetRun]
		found := make([]Match, 0, len(run))
		for _, t := range run {
			found = append(found, Match{Source: owner, Target: t})
		}
		c.NextTarget += targetRun
		return state, c, found

	case SourceRunOnly:
		owner := anchor(targets, c.NextTarget)
		run := sources[c.NextSource : c.NextSource+sourceRun]
		found := make([]Match, 0, len(run))
		for _, s := range run {
			found = append(found, Match{Source: s, Target: owner})
		}
		c.NextSource += sourceRun
		return state, c, found

	case BothRunsAmbiguous:
		found := a.policy().Resolve(
			sources[c.NextSource:c.NextSource+sourceRun],
			targets[c.NextTarget:c.NextTarget+targetRun],
		)
		c.NextSource += sourceRun
		c.NextTarget += targetRun
		return state, c, found

	case Tail:
		var found []Match
		lastSource := sources[len(sources)-1]
		for _, t := range targets[min(c.NextTarget, len(targets)):] {
			found = append(found, Match{Source: lastSource, Target: t})
		}
		lastTarget := targets[len(targets)-1]
		for _, s := range sources[min(c.NextSource, len(sources)):] {
			found = append(found, Match{Source: s, Target: lastTarget})
		}
		return state, Cursor{NextSource: len(sources), NextTarget: len(targets)}, found
	}

	return Done, c, nil
}

func (a *Aligner) policy() AmbiguityPolicy {
	if a.Policy == nil {
		return LastOfShorter
	}
	return a.Policy
}

// anchor returns the paragraph a run on the other side attaches to: the last
// consumed paragraph, or the first one when nothing is consumed yet.
func anchor(ps []*para.Paragraph, next int) *para.Paragraph {
	if next == 0 {
		return ps[0]
	}
	return ps[min(next, len(ps))-1]
}

// walkRanged pairs the ranged run at the source cursor with the ranged run
// at the target cursor by verse overlap.
//
// Each source is paired with every following target that overlaps it. The
// last target consumed is carried over and re-checked against the next
// source, so a long target can be paired with several sources. A target
// lying wholly before the current source goes to the previous source. A
// source that overlaps nothing goes to the carried target, or consumes the
// target at the cursor when nothing is carried.
//
// The walk ends at a rangeless source, at the end of the sources, or before
// a source when the target cursor rests on a rangeless target.
func walkRanged(sources, targets []*para.Paragraph, c Cursor) (Cursor, []Match) {
	var found []Match
	s, t := c.NextSource, c.NextTarget
	carry := -1

	for s < len(sources) && sources[s].HasRange() {
		if t < len(targets) && !targets[t].HasRange() {
			break
		}
		src := sources[s]
		paired := false

		if carry >= 0 && src.Range.Overlaps(*targets[carry].Range) {
			found = append(found, Match{Source: src, Target: targets[carry]})
			paired = true
		}

	walk:
		for t < len(targets) && targets[t].HasRange() {
			tgt := targets[t]
			switch {
			case src.Range.Overlaps(*tgt.Range):
				found = append(found, Match{Source: src, Target: tgt})
				paired = true
			case tgt.Range.Before(*src.Range):
				owner := anchor(sources, s)
				found = append(found, Match{Source: owner, Target: tgt})
				paired = paired || owner == src
			default:
				break walk
			}
			carry = t
			t++
		}

		if !paired {
			if carry < 0 {
				carry = t
				t++
			}
			found = append(found, Match{Source: src, Target: targets[carry]})
		}
		s++
	}

	return Cursor{NextSource: s, NextTarget: t}, found
}
