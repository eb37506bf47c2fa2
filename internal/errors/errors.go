// Package errors provides standardized domain errors with codes for albumtag.
//
// Usage:
//
//	// In library code - return typed errors
//	if _, ok := catalog[id]; !ok {
//	    return nil, errors.UnknownComposition(id)
//	}
//
//	// In commands - check with errors.Is
//	if errors.Is(err, errors.ErrUnknownComposition) {
//	    ...
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    os.Exit(domainErr.Code.ExitCode())
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeUnknownComposition    Code = "UNKNOWN_COMPOSITION"
	CodeOverlappingAssignment Code = "OVERLAPPING_ASSIGNMENT"
	CodeNotFound              Code = "NOT_FOUND"
	CodeValidation            Code = "VALIDATION"
	CodeConflict              Code = "CONFLICT"
	CodeUnsupportedFormat     Code = "UNSUPPORTED_FORMAT"
	CodeInternal              Code = "INTERNAL"
)

// ExitCode returns the process exit status for an error code.
func (c Code) ExitCode() int {
	switch c {
	case CodeValidation:
		return 2
	case CodeNotFound:
		return 3
	case CodeUnknownComposition:
		return 4
	case CodeOverlappingAssignment:
		return 5
	case CodeConflict:
		return 6
	case CodeUnsupportedFormat:
		return 7
	default:
		return 1
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// ExitCode returns the process exit status for this error.
func (e *Error) ExitCode() int {
	return e.Code.ExitCode()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrUnknownComposition    = &Error{Code: CodeUnknownComposition, Message: "unknown composition"}
	ErrOverlappingAssignment = &Error{Code: CodeOverlappingAssignment, Message: "overlapping assignment"}
	ErrNotFound              = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation            = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConflict              = &Error{Code: CodeConflict, Message: "conflict"}
	ErrUnsupportedFormat     = &Error{Code: CodeUnsupportedFormat, Message: "unsupported format"}
	ErrInternal              = &Error{Code: CodeInternal, Message: "internal error"}
)

// ExitCode returns the exit status for any error: 0 for nil, the code's
// status for domain errors, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.ExitCode()
	}
	return 1
}

// Constructor functions for creating errors with custom messages.

// UnknownComposition creates an unknown composition error carrying the id.
func UnknownComposition(id string) *Error {
	return &Error{
		Code:    CodeUnknownComposition,
		Message: fmt.Sprintf("unknown composition %q", id),
		Details: id,
	}
}

// OverlappingAssignment creates an overlapping assignment error.
func OverlappingAssignment(msg string) *Error {
	return &Error{Code: CodeOverlappingAssignment, Message: msg}
}

// OverlappingAssignmentf creates an overlapping assignment error with formatted message.
func OverlappingAssignmentf(format string, args ...any) *Error {
	return &Error{Code: CodeOverlappingAssignment, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Conflictf creates a conflict error with formatted message.
func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedFormatf creates an unsupported format error with formatted message.
func UnsupportedFormatf(format string, args ...any) *Error {
	return &Error{Code: CodeUnsupportedFormat, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
