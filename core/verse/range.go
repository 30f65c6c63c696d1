package verse

import (
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
)

// Range is an immutable span of verse material from Start up to End.
// Start never sorts after End. Ranges are comparable with ==.
type Range struct {
	start Index
	end   Index
}

// NewRange returns the range from start to end. It returns an
// *errors.InvalidRangeError when start sorts after end.
func NewRange(start, end Index) (Range, error) {
	if start.Compare(end) > 0 {
		return Range{}, &errors.InvalidRangeError{Start: start.String(), End: end.String()}
	}
	return Range{start: start, end: end}, nil
}

// MustRange is like NewRange but panics on an invalid range.
// Intended for literals in tests and tables.
func MustRange(start, end Index) Range {
	r, err := NewRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Verses returns the whole-verse range [first, end).
func Verses(first, end int) (Range, error) {
	return NewRange(At(first), At(end))
}

// Start returns the start boundary.
func (r Range) Start() Index { return r.start }

// End returns the end boundary.
func (r Range) End() Index { return r.end }

// IsEmpty reports whether the range holds no verse material.
func (r Range) IsEmpty() bool {
	return r.start == r.end
}

// touched returns the half-open interval [lo, hi) of verse numbers the range
// holds any part of. Overlaps, Before and VerseCount are all derived from it.
func (r Range) touched() (lo, hi int) {
	if r.IsEmpty() {
		return r.start.verse, r.start.verse
	}
	return r.start.verse, r.end.ceil()
}

// VerseCount returns the number of distinct verses the range holds any part
// of. A verse split at a mid-verse boundary counts once on each side.
func (r Range) VerseCount() int {
	lo, hi := r.touched()
	return hi - lo
}

// Overlaps reports whether the two ranges touch a common verse. An empty
// range overlaps nothing.
func (r Range) Overlaps(other Range) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	lo, hi := r.touched()
	olo, ohi := other.touched()
	return lo < ohi && olo < hi
}

// Before reports whether every verse r touches precedes every verse other
// touches. Empty ranges are before anything that starts at or after them.
func (r Range) Before(other Range) bool {
	_, hi := r.touched()
	olo, _ := other.touched()
	return hi <= olo
}

// Contains reports whether the position i lies inside the range.
// The end boundary itself is outside.
func (r Range) Contains(i Index) bool {
	return r.start.Compare(i) <= 0 && i.Compare(r.end) < 0
}

// Equal reports whether both ranges have the same boundaries.
func (r Range) Equal(other Range) bool {
	return r == other
}

// String returns the canonical text form "start-end", e.g. "4-5b".
func (r Range) String() string {
	return r.start.String() + "-" + r.end.String()
}
