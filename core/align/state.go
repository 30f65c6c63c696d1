package align

import (
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
)

// State names the shape of the input at the two cursors.
type State int

// Alignment states, listed in the priority order Classify applies them.
const (
	// Done means both cursors are past the end.
	Done State = iota

	// BothRanged means both cursors are at a paragraph with a range.
	BothRanged

	// TargetRunOnly means the target cursor is at a rangeless run and the
	// source cursor is at a ranged paragraph or past the end.
	TargetRunOnly

	// SourceRunOnly means the source cursor is at a rangeless run and the
	// target cursor is at a ranged paragraph or past the end.
	SourceRunOnly

	// BothRunsAmbiguous means both cursors are at rangeless runs.
	BothRunsAmbiguous

	// Tail means one side is exhausted and the other has ranged paragraphs left.
	Tail
)

var stateNames = map[State]string{
	Done:              "done",
	BothRanged:        "both_ranged",
	TargetRunOnly:     "target_run_only",
	SourceRunOnly:     "source_run_only",
	BothRunsAmbiguous: "both_runs_ambiguous",
	Tail:              "tail",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Cursor holds the index of the next unconsumed paragraph on each side.
type Cursor struct {
	NextSource int
	NextTarget int
}

// Classify returns the state at cursor c together with the lengths of the
// rangeless runs starting at each cursor.
func Classify(sources, targets []*para.Paragraph, c Cursor) (state State, sourceRun, targetRun int) {
	sourceDone := c.NextSource >= len(sources)
	targetDone := c.NextTarget >= len(targets)
	if sourceDone && targetDone {
		return Done, 0, 0
	}

	sourceRun = para.RangelessRun(sources, c.NextSource)
	targetRun = para.RangelessRun(targets, c.NextTarget)

	switch {
	case sourceRun == 0 && targetRun == 0:
		if sourceDone || targetDone {
			return Tail, 0, 0
		}
		return BothRanged, 0, 0
	case sourceRun == 0:
		return TargetRunOnly, 0, targetRun
	case targetRun == 0:
		return SourceRunOnly, sourceRun, 0
	default:
		return BothRunsAmbiguous, sourceRun, targetRun
	}
}
