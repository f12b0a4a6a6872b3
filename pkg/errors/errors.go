// Package errors provides structured error types for tlds.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and libraries
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNSUPPORTED_*: Requests for capabilities that do not exist
//   - NOT_FOUND_*: Resource not found
//   - IO_* / INTERNAL_*: Failures while producing output
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "triple %d: missing subject", i)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidIRI    Code = "INVALID_IRI"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Capability errors
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Output errors
	ErrCodeIO       Code = "IO_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// coder is implemented by error types that carry a code without being *Error.
type coder interface {
	Code() Code
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or another coded error
// with a matching code. The outermost coded error wins.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for ; err != nil; err = errors.Unwrap(err) {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// UnsupportedFormatError is returned when a serializer is asked for a
// format it does not produce. It is raised before any output is written.
type UnsupportedFormatError struct {
	Format    string   // The rejected format identifier
	Supported []string // Formats that would have been accepted
}

// NewUnsupportedFormat returns an UnsupportedFormatError for format.
func NewUnsupportedFormat(format string, supported ...string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format, Supported: supported}
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	if len(e.Supported) > 0 {
		return fmt.Sprintf("unsupported format %q (supported: %s)", e.Format, strings.Join(e.Supported, ", "))
	}
	return fmt.Sprintf("unsupported format %q", e.Format)
}

// Code returns the error code for this error type.
func (e *UnsupportedFormatError) Code() Code {
	return ErrCodeUnsupportedFormat
}

// IsUnsupportedFormat reports whether err is or wraps an
// UnsupportedFormatError and returns it.
func IsUnsupportedFormat(err error) (*UnsupportedFormatError, bool) {
	var e *UnsupportedFormatError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
