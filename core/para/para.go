// Package para defines the paragraph records that the aligner reads.
package para

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/verse"
)

// Position is the place of a paragraph within its book.
type Position struct {
	// Chapter is the chapter number (0 for front matter).
	Chapter int `json:"chapter"`

	// Section is the section number within the chapter.
	Section int `json:"section"`

	// Index is the paragraph index within the section.
	Index int `json:"index"`
}

// Compare orders positions by chapter, section and index.
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Chapter, other.Chapter); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Section, other.Section); c != 0 {
		return c
	}
	return cmp.Compare(p.Index, other.Index)
}

// String returns "chapter:section:index".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Chapter, p.Section, p.Index)
}

// Paragraph is a single paragraph of a book. Range is nil for paragraphs
// that carry no verse material, such as headings and introductions.
type Paragraph struct {
	// ID is an opaque identifier, unique within the store it came from.
	ID string `json:"id"`

	// BookID identifies the book the paragraph belongs to.
	BookID string `json:"book_id,omitempty"`

	// Position is the place of the paragraph in its book.
	Position Position `json:"position"`

	// Range is the verse material the paragraph holds (optional).
	Range *verse.Range `json:"range,omitempty"`

	// Style is the paragraph style marker (e.g., "p", "q1", "s1").
	Style string `json:"style,omitempty"`

	// Text is the paragraph text.
	Text string `json:"text,omitempty"`
}

// HasRange reports whether the paragraph carries a verse range.
func (p *Paragraph) HasRange() bool {
	return p.Range != nil
}

// String returns a short description used in logs and CLI output.
func (p *Paragraph) String() string {
	if p.Range == nil {
		return fmt.Sprintf("%s@%s", p.ID, p.Position)
	}
	return fmt.Sprintf("%s@%s[%s]", p.ID, p.Position, p.Range)
}

// SortByPosition sorts paragraphs into book order. Paragraphs with equal
// positions keep their relative order.
func SortByPosition(ps []*Paragraph) {
	slices.SortStableFunc(ps, func(a, b *Paragraph) int {
		return a.Position.Compare(b.Position)
	})
}

// IsSorted reports whether the paragraphs are in book order.
func IsSorted(ps []*Paragraph) bool {
	return slices.IsSortedFunc(ps, func(a, b *Paragraph) int {
		return a.Position.Compare(b.Position)
	})
}

// RangelessRun returns the length of the run of consecutive paragraphs
// without a range starting at from. It is 0 when from is past the end or the
// paragraph at from has a range.
func RangelessRun(ps []*Paragraph, from int) int {
	n := 0
	for i := from; i < len(ps) && !ps[i].HasRange(); i++ {
		n++
	}
	return n
}
