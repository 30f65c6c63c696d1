// Package verse provides the verse position and verse range value types used
// to align paragraphs between a source text and its translation.
//
// # Positions
//
// An Index is a boundary between pieces of verse material. Index 5 is the
// point where verse 5 begins; the mid-verse index 5b is the point inside
// verse 5 where its second part begins. Indices are totally ordered by verse
// number first and then whole before mid:
//
//	5 < 5b < 6
//
// # Ranges
//
// A Range runs from its start boundary up to its end boundary. The range
// 4-5b holds verse 4 and the first part of verse 5, so it touches two verses.
// A range touches verse v when it holds any part of v. Two ranges overlap
// when they touch a common verse, which means ranges that meet at a mid-verse
// boundary overlap while ranges that meet at a whole-verse boundary do not:
//
//	verse.MustRange(verse.At(4), verse.Mid(5)).Overlaps(verse.MustRange(verse.Mid(5), verse.At(8))) // true
//	verse.MustRange(verse.At(1), verse.At(2)).Overlaps(verse.MustRange(verse.At(2), verse.At(4)))   // false
//
// # Representations
//
// Ranges have a canonical text form ("4-5b") parsed by ParseRange, and a
// property form (see Properties) used by persistence layers.
package verse
