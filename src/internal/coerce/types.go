package coerce

import (
	"strconv"
	"strings"

	"github.com/maksimkurb/configurator/src/internal/errors"
)

// Type is a declared value type.
type Type uint8

const (
	String Type = iota
	Integer
	Float
	Boolean
)

var typeNames = [...]string{
	String:  "string",
	Integer: "integer",
	Float:   "float",
	Boolean: "boolean",
}

// Valid reports whether t is one of the four supported tags.
func (t Type) Valid() bool {
	return int(t) < len(typeNames)
}

func (t Type) String() string {
	if !t.Valid() {
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// MarshalText encodes the type by name.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.NewUnknownType(t.String())
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name, see ParseType.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType maps a type name to its tag. Matching is case-insensitive and
// accepts the short aliases "str", "int" and "bool".
func ParseType(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "string", "str":
		return String, nil
	case "integer", "int":
		return Integer, nil
	case "float":
		return Float, nil
	case "boolean", "bool":
		return Boolean, nil
	}
	return 0, errors.NewUnknownType(name)
}

// Value is a typed configuration value. The zero Value is the empty string.
// Values are comparable with ==.
type Value struct {
	typ Type
	s   string
	i   int64
	f   float64
	b   bool
}

// StringValue returns a String value.
func StringValue(s string) Value { return Value{typ: String, s: s} }

// IntegerValue returns an Integer value.
func IntegerValue(i int64) Value { return Value{typ: Integer, i: i} }

// FloatValue returns a Float value.
func FloatValue(f float64) Value { return Value{typ: Float, f: f} }

// BooleanValue returns a Boolean value.
func BooleanValue(b bool) Value { return Value{typ: Boolean, b: b} }

// Type returns the value's tag.
func (v Value) Type() Type { return v.typ }

// Str returns the string payload; it is empty for non-string values.
func (v Value) Str() string { return v.s }

// Int returns the integer payload.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload.
func (v Value) Float() float64 { return v.f }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Interface returns the payload as a Go native: string, int64, float64 or bool.
func (v Value) Interface() any {
	switch v.typ {
	case Integer:
		return v.i
	case Float:
		return v.f
	case Boolean:
		return v.b
	default:
		return v.s
	}
}

// String returns the textual form of v, see Format.
func (v Value) String() string {
	return Format(v)
}

// MarshalText encodes v in its textual form.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(Format(v)), nil
}
