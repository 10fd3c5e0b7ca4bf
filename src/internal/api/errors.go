package api

import (
	"net/http"

	"github.com/goccy/go-json"

	cerrors "github.com/maksimkurb/configurator/src/internal/errors"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeStoreNotFound indicates the configuration file does not exist.
	ErrCodeStoreNotFound ErrorCode = "store_not_found"

	// ErrCodeForbidden indicates the client is not allowed to use the API.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"

	// ErrCodeValidationFailed indicates configuration validation failed.
	ErrCodeValidationFailed ErrorCode = "validation_failed"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// WithDetails adds details to an APIError.
func (e APIError) WithDetails(details map[string]interface{}) APIError {
	e.Details = details
	return e
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err})
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteNotFound writes a 404 Not Found error.
func WriteNotFound(w http.ResponseWriter, resource string) {
	WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, resource+" not found"))
}

// WriteForbidden writes a 403 Forbidden error.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// WriteValidationError writes a 400 Bad Request with validation details.
func WriteValidationError(w http.ResponseWriter, message string, details map[string]interface{}) {
	err := NewAPIError(ErrCodeValidationFailed, message).WithDetails(details)
	WriteError(w, http.StatusBadRequest, err)
}

// WriteEngineError maps an engine or store failure to a response.
func WriteEngineError(w http.ResponseWriter, err error) {
	e, ok := cerrors.As(err)
	if !ok {
		WriteInternalError(w, err.Error())
		return
	}

	switch e.Code {
	case cerrors.ErrCodeStoreNotFound:
		WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeStoreNotFound, err.Error()).WithDetails(map[string]interface{}{
			"location": e.Name,
		}))
	case cerrors.ErrCodeMissingSection, cerrors.ErrCodeMissingKey, cerrors.ErrCodeUnknownType,
		cerrors.ErrCodeInvalidValue, cerrors.ErrCodeInvalidBoolean:
		details := map[string]interface{}{"kind": string(e.Code)}
		if e.Section != "" {
			details["section"] = e.Section
		}
		if e.Key != "" {
			details["key"] = e.Key
		}
		if e.Name != "" {
			details["name"] = e.Name
		}
		WriteValidationError(w, err.Error(), details)
	default:
		WriteInternalError(w, err.Error())
	}
}

func locateErr(err error, section, key string) error {
	if e, ok := cerrors.As(err); ok {
		return e.At(section, key)
	}
	return err
}
