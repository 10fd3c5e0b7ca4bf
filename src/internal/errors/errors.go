// Package errors provides domain-specific error types for configurator.
//
// Every failure surfaced by the coercion engine, the schema engine and the
// backing store is an *Error carrying an ErrorCode, so callers can tell a
// missing store from a bad value without parsing messages:
//
//	if errors.Is(err, cerrors.ErrStoreNotFound) {
//	    // offer to create the file
//	}
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeStoreNotFound indicates the backing store file does not exist.
	ErrCodeStoreNotFound ErrorCode = "STORE_NOT_FOUND"

	// ErrCodeMissingSection indicates a schema section is absent from a document.
	ErrCodeMissingSection ErrorCode = "MISSING_SECTION"

	// ErrCodeMissingKey indicates a schema key is absent from a document section.
	ErrCodeMissingKey ErrorCode = "MISSING_KEY"

	// ErrCodeUnknownType indicates a type tag outside the supported set.
	ErrCodeUnknownType ErrorCode = "UNKNOWN_TYPE"

	// ErrCodeInvalidValue indicates a value that does not parse under its declared type.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"

	// ErrCodeInvalidBoolean indicates a string outside the boolean grammar.
	ErrCodeInvalidBoolean ErrorCode = "INVALID_BOOLEAN"

	// ErrCodeStore indicates the backing store could not be read, parsed or written.
	ErrCodeStore ErrorCode = "STORE_ERROR"

	// ErrCodeSchema indicates a malformed schema declaration.
	ErrCodeSchema ErrorCode = "SCHEMA_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is comparisons. Matching is by code only.
var (
	ErrStoreNotFound  = &Error{Code: ErrCodeStoreNotFound}
	ErrMissingSection = &Error{Code: ErrCodeMissingSection}
	ErrMissingKey     = &Error{Code: ErrCodeMissingKey}
	ErrUnknownType    = &Error{Code: ErrCodeUnknownType}
	ErrInvalidValue   = &Error{Code: ErrCodeInvalidValue}
	ErrInvalidBoolean = &Error{Code: ErrCodeInvalidBoolean}
	ErrStore          = &Error{Code: ErrCodeStore}
	ErrSchema         = &Error{Code: ErrCodeSchema}
)

// Error represents a domain-specific error with an error code, the offending
// name and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	// Name is the offending item: a section, key, type tag, raw value or path
	// depending on Code.
	Name string
	// Section and Key locate the failure inside a document when known.
	Section string
	Key     string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if loc := e.location(); loc != "" {
		msg = fmt.Sprintf("%s (at %s)", msg, loc)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

func (e *Error) location() string {
	switch {
	case e.Section != "" && e.Key != "":
		return e.Section + "." + e.Key
	case e.Section != "" && e.Code != ErrCodeMissingSection:
		return e.Section
	}
	return ""
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// At returns a copy of e located at section/key. Empty arguments keep the
// existing location.
func (e *Error) At(section, key string) *Error {
	c := *e
	if section != "" {
		c.Section = section
	}
	if key != "" {
		c.Key = key
	}
	return &c
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewStoreNotFound reports a missing backing store at path.
func NewStoreNotFound(path string) *Error {
	return &Error{Code: ErrCodeStoreNotFound, Message: "store not found: " + path, Name: path}
}

// NewMissingSection reports a schema section absent from a document.
func NewMissingSection(section string) *Error {
	return &Error{Code: ErrCodeMissingSection, Message: "missing section: " + section, Name: section, Section: section}
}

// NewMissingKey reports a schema key absent from a document section.
func NewMissingKey(section, key string) *Error {
	return &Error{Code: ErrCodeMissingKey, Message: "missing key: " + key, Name: key, Section: section, Key: key}
}

// NewUnknownType reports an unsupported type tag.
func NewUnknownType(tag string) *Error {
	return &Error{Code: ErrCodeUnknownType, Message: "unknown type: " + tag, Name: tag}
}

// NewInvalidValue reports a value that failed to parse as typeName.
func NewInvalidValue(value, typeName string, cause error) *Error {
	return &Error{
		Code:    ErrCodeInvalidValue,
		Message: fmt.Sprintf("invalid %s value %q", typeName, value),
		Name:    value,
		Cause:   cause,
	}
}

// NewInvalidBoolean reports a string outside the boolean grammar.
func NewInvalidBoolean(value string) *Error {
	return &Error{Code: ErrCodeInvalidBoolean, Message: fmt.Sprintf("invalid boolean value %q", value), Name: value}
}

// NewStoreError creates a new backing store error.
func NewStoreError(message string, cause error) *Error {
	return Wrap(ErrCodeStore, message, cause)
}

// NewSchemaError creates a new schema declaration error.
func NewSchemaError(message string, cause error) *Error {
	return Wrap(ErrCodeSchema, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// As is a shorthand for errors.As with an *Error target.
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}
