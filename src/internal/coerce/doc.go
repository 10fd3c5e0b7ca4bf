// Package coerce converts raw configuration strings into typed values.
//
// A schema declares one of four types per key: string, integer, float or
// boolean. Coerce turns a raw string into a Value of the declared Type, and
// Format turns a Value back into the string written to the backing store:
//
//	v, err := coerce.Coerce("8080", coerce.Integer)
//	// v.Int() == 8080, coerce.Format(v) == "8080"
//
// # Grammar
//
//   - string: any text, unchanged
//   - integer: optional sign followed by base-10 digits
//   - float: decimal or exponent notation, plus Inf and NaN
//   - boolean: true/yes/y/t/1/on and false/no/n/f/0/off, case-insensitive
//
// Coercion is pure. CoerceValue is the identity for a value that already has
// the requested type, which makes re-validating a typed document safe.
package coerce
