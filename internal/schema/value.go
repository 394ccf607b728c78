package schema

import (
	"fmt"
	"strconv"
)

// SentinelText is the wire representation of an unavailable value. The model
// is instructed to emit it when a dimension cannot be determined, and it is
// what an unavailable value renders as in logs. In memory the tagged Value
// type is used instead, so a legitimate field value can never be confused
// with the sentinel once decoded.
const SentinelText = "N/A"

type valueKind int

const (
	kindUnavailable valueKind = iota
	kindInt
	kindFloat
	kindText
)

// Value is a single normalized field value: either a typed scalar or the
// distinguished unavailable marker. The zero Value is unavailable.
type Value struct {
	kind valueKind
	i    int64
	f    float64
	s    string
}

// Unavailable returns the marker for a value that could not be determined.
func Unavailable() Value {
	return Value{kind: kindUnavailable}
}

// IntValue wraps an integer rating.
func IntValue(v int64) Value {
	return Value{kind: kindInt, i: v}
}

// FloatValue wraps a floating-point rating.
func FloatValue(v float64) Value {
	return Value{kind: kindFloat, f: v}
}

// TextValue wraps a textual field.
func TextValue(v string) Value {
	return Value{kind: kindText, s: v}
}

// IsUnavailable reports whether the value is the unavailable marker.
func (v Value) IsUnavailable() bool {
	return v.kind == kindUnavailable
}

// Int returns the integer payload. ok is false for any other kind.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == kindInt
}

// Float returns the floating-point payload. ok is false for any other kind.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == kindFloat
}

// Text returns the textual payload. ok is false for any other kind.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == kindText
}

// Interface returns the payload as an untyped value, or nil when unavailable.
// This is the shape the BigQuery inserter wants: nil becomes a NULL column,
// which keeps the sentinel distinct from zero and empty string.
func (v Value) Interface() interface{} {
	switch v.kind {
	case kindInt:
		return v.i
	case kindFloat:
		return v.f
	case kindText:
		return v.s
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindText:
		return v.s
	default:
		return SentinelText
	}
}

// MatchesType reports whether the value is unavailable or carries a payload
// of the declared field type.
func (v Value) MatchesType(t FieldType) bool {
	switch v.kind {
	case kindUnavailable:
		return true
	case kindInt:
		return t == TypeInt
	case kindFloat:
		return t == TypeFloat
	case kindText:
		return t == TypeText
	default:
		return false
	}
}

// GoString helps test failure output stay readable.
func (v Value) GoString() string {
	switch v.kind {
	case kindInt:
		return fmt.Sprintf("schema.IntValue(%d)", v.i)
	case kindFloat:
		return fmt.Sprintf("schema.FloatValue(%g)", v.f)
	case kindText:
		return fmt.Sprintf("schema.TextValue(%q)", v.s)
	default:
		return "schema.Unavailable()"
	}
}
