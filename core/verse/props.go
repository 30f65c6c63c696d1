package verse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
)

// Property names of the range property form.
const (
	PropStartVerse    = "startVerse"
	PropStartMidVerse = "startMidVerse"
	PropEndVerse      = "endVerse"
	PropEndMidVerse   = "endMidVerse"
)

const propFormat = "verse range"

// Properties returns the property form of the range. The map is a fresh copy
// holding only int and bool values.
func (r Range) Properties() map[string]any {
	return map[string]any{
		PropStartVerse:    r.start.verse,
		PropStartMidVerse: r.start.mid,
		PropEndVerse:      r.end.verse,
		PropEndMidVerse:   r.end.mid,
	}
}

// ParseProperties rebuilds a range from its property form.
// Numbers may be any Go integer, an integral float64 or a json.Number so that
// maps decoded from JSON parse back. Missing or malformed fields yield an
// *errors.ParseError; boundaries out of order yield an *errors.InvalidRangeError.
func ParseProperties(props map[string]any) (Range, error) {
	if props == nil {
		return Range{}, errors.NewParse(propFormat, "", "no properties")
	}
	startVerse, err := intProp(props, PropStartVerse)
	if err != nil {
		return Range{}, err
	}
	startMid, err := boolProp(props, PropStartMidVerse)
	if err != nil {
		return Range{}, err
	}
	endVerse, err := intProp(props, PropEndVerse)
	if err != nil {
		return Range{}, err
	}
	endMid, err := boolProp(props, PropEndMidVerse)
	if err != nil {
		return Range{}, err
	}
	return NewRange(NewIndex(startVerse, startMid), NewIndex(endVerse, endMid))
}

func intProp(props map[string]any, key string) (int, error) {
	v, ok := props[key]
	if !ok {
		return 0, errors.NewParse(propFormat, key, "missing")
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, errors.NewParse(propFormat, key, fmt.Sprintf("%v is not an integer", n))
		}
		if n < math.MinInt || n >= math.MaxInt {
			return 0, errors.NewParse(propFormat, key, fmt.Sprintf("%v is out of range", n))
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &errors.ParseError{Format: propFormat, Field: key, Message: "not an integer", Err: err}
		}
		return int(i), nil
	default:
		return 0, errors.NewParse(propFormat, key, fmt.Sprintf("unexpected type %T", v))
	}
}

func boolProp(props map[string]any, key string) (bool, error) {
	v, ok := props[key]
	if !ok {
		return false, errors.NewParse(propFormat, key, "missing")
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.NewParse(propFormat, key, fmt.Sprintf("unexpected type %T", v))
	}
	return b, nil
}

// MarshalJSON encodes the range in its property form.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Properties())
}

// UnmarshalJSON decodes a range from its property form.
func (r *Range) UnmarshalJSON(data []byte) error {
	var props map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&props); err != nil {
		return &errors.ParseError{Format: propFormat, Message: "invalid JSON", Err: err}
	}
	parsed, err := ParseProperties(props)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
