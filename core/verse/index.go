package verse

import (
	"cmp"
	"strconv"
)

// midMarker is the suffix used for mid-verse indices in text form.
const midMarker = "b"

// Index is a verse boundary position. The zero value is the start of verse 0.
type Index struct {
	verse int
	mid   bool
}

// NewIndex returns the index for the given verse number and mid-verse flag.
func NewIndex(verse int, mid bool) Index {
	return Index{verse: verse, mid: mid}
}

// At returns the index where the given verse begins.
func At(verse int) Index {
	return Index{verse: verse}
}

// Mid returns the mid-verse index inside the given verse.
func Mid(verse int) Index {
	return Index{verse: verse, mid: true}
}

// Verse returns the verse number.
func (i Index) Verse() int { return i.verse }

// IsMid reports whether the index splits its verse.
func (i Index) IsMid() bool { return i.mid }

// Compare returns -1, 0 or +1 depending on whether i sorts before, equal to
// or after other.
func (i Index) Compare(other Index) int {
	if c := cmp.Compare(i.verse, other.verse); c != 0 {
		return c
	}
	switch {
	case i.mid == other.mid:
		return 0
	case !i.mid:
		return -1
	default:
		return 1
	}
}

// Less reports whether i sorts before other.
func (i Index) Less(other Index) bool {
	return i.Compare(other) < 0
}

// String returns the canonical text form, e.g. "5" or "5b".
func (i Index) String() string {
	s := strconv.Itoa(i.verse)
	if i.mid {
		s += midMarker
	}
	return s
}

// ceil returns the first verse number not touched by material ending at i.
func (i Index) ceil() int {
	if i.mid {
		return i.verse + 1
	}
	return i.verse
}
