// Package align pairs the paragraphs of a source book with the paragraphs of
// its translation.
//
// Paragraphs that carry a verse range are paired by overlap. Runs of
// rangeless paragraphs (headings, introductions) are attached to the nearest
// paragraph already consumed on the other side. When both books present a
// rangeless run at the same point the runs are handed to an AmbiguityPolicy.
//
// The algorithm is a state machine over two cursors. Classify names the
// state at a cursor and Aligner.Step performs one transition:
//
//	BothRanged         overlap walk over the ranged runs
//	TargetRunOnly      target run attaches to the last consumed source
//	SourceRunOnly      source run attaches to the last consumed target
//	BothRunsAmbiguous  runs are resolved by the policy
//	Tail               leftovers attach to the final paragraph of the other side
//	Done               both cursors are past the end
//
// Verse numbers restart with each chapter, so whole books go through
// AlignChapters, which runs Align once per chapter shared by both books.
//
// Every paragraph of both books appears in at least one Match unless one of
// the books is empty, in which case no matches are produced.
package align
