package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/maksimkurb/configurator/src/internal/errors"
)

// Coerce converts a raw string to a Value of type t.
func Coerce(raw string, t Type) (Value, error) {
	switch t {
	case String:
		return StringValue(raw), nil
	case Integer:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, errors.NewInvalidValue(raw, t.String(), unwrapNumError(err))
		}
		return IntegerValue(i), nil
	case Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, errors.NewInvalidValue(raw, t.String(), unwrapNumError(err))
		}
		return FloatValue(f), nil
	case Boolean:
		b, err := ParseBool(raw)
		if err != nil {
			return Value{}, err
		}
		return BooleanValue(b), nil
	}
	return Value{}, errors.NewUnknownType(t.String())
}

// CoerceValue converts an already typed value to type t. A value that
// already has type t is returned unchanged, so CoerceValue is idempotent.
// String values are parsed with Coerce, an Integer widens to Float, and any
// value may be narrowed to its textual form for String. Other conversions
// fail with InvalidValue.
func CoerceValue(v Value, t Type) (Value, error) {
	if !t.Valid() {
		return Value{}, errors.NewUnknownType(t.String())
	}
	if v.typ == t {
		return v, nil
	}
	switch {
	case v.typ == String:
		return Coerce(v.s, t)
	case t == String:
		return StringValue(Format(v)), nil
	case v.typ == Integer && t == Float:
		return FloatValue(float64(v.i)), nil
	}
	return Value{}, errors.NewInvalidValue(Format(v), t.String(), nil)
}

// Native converts a Go native to a Value of type t. It accepts string, bool,
// int, int64, float64, decoded JSON numbers (json.Number) and Value. A native
// bool for a Boolean type passes through unchanged; whole floats are
// accepted for Integer.
func Native(x any, t Type) (Value, error) {
	if !t.Valid() {
		return Value{}, errors.NewUnknownType(t.String())
	}
	switch n := x.(type) {
	case Value:
		return CoerceValue(n, t)
	case string:
		return Coerce(n, t)
	case bool:
		return CoerceValue(BooleanValue(n), t)
	case int:
		return CoerceValue(IntegerValue(int64(n)), t)
	case int64:
		return CoerceValue(IntegerValue(n), t)
	case number:
		return nativeNumber(n, t)
	case float64:
		if t == Integer && n == math.Trunc(n) && math.Abs(n) < 1<<63 {
			return IntegerValue(int64(n)), nil
		}
		return CoerceValue(FloatValue(n), t)
	case nil:
		return Value{}, errors.NewInvalidValue("null", t.String(), nil)
	}
	return Value{}, errors.NewInvalidValue(fmt.Sprintf("%v", x), t.String(), nil)
}

// number is a JSON number kept as its literal text, such as json.Number.
type number interface {
	String() string
	Int64() (int64, error)
	Float64() (float64, error)
}

func nativeNumber(n number, t Type) (Value, error) {
	switch t {
	case Integer:
		if i, err := n.Int64(); err == nil {
			return IntegerValue(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return Value{}, errors.NewInvalidValue(n.String(), t.String(), unwrapNumError(err))
		}
		return Native(f, t)
	case Float:
		f, err := n.Float64()
		if err != nil {
			return Value{}, errors.NewInvalidValue(n.String(), t.String(), unwrapNumError(err))
		}
		return FloatValue(f), nil
	case String:
		return StringValue(n.String()), nil
	}
	return Value{}, errors.NewInvalidValue(n.String(), t.String(), nil)
}

// Format returns the textual form of v. Coerce(Format(v), v.Type()) == v for
// every value except NaN floats.
func Format(v Value) string {
	switch v.typ {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return formatFloat(v.f)
	case Boolean:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// formatFloat keeps a fractional marker so that "1.0" does not come back as "1".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
