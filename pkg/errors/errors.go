// Package errors provides structured error types for cargo-authors.
//
// Every failure that reaches the top level of a run carries a [Code] so the
// CLI and the HTTP surface can classify it without string matching:
//
//   - INVALID_PATH: the project path does not exist or cannot be canonicalized
//   - MANIFEST_NOT_FOUND: no Cargo.toml at the resolved path
//   - WORKSPACE_LOAD: the manifest could not be loaded as a package
//   - DEPENDENCY_RESOLUTION: the lock file or a dependency source is unusable
//   - ARGUMENT_ENCODING: process arguments are not valid UTF-8
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeManifestNotFound, origErr, "no manifest in %s", dir)
//
// [Chain] flattens an error into the message lines printed as
// "error: ..." followed by "caused by: ...".
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
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidPackage    Code = "INVALID_PACKAGE"
	ErrCodeArgumentEncoding  Code = "ARGUMENT_ENCODING"
	ErrCodeManifestNotFound  Code = "MANIFEST_NOT_FOUND"
	ErrCodeWorkspaceLoad     Code = "WORKSPACE_LOAD"
	ErrCodeDependencyResolve Code = "DEPENDENCY_RESOLUTION"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Chain returns one message per link of err's causal chain, outermost first.
//
// Each link contributes only its own text: for *Error that is the Message,
// for fmt-wrapped errors the prefix before the wrapped error's text. Links
// that add no text of their own are skipped. Joined errors are not expanded.
func Chain(err error) []string {
	var out []string
	for err != nil {
		next := errors.Unwrap(err)
		if msg := ownMessage(err, next); msg != "" {
			out = append(out, msg)
		}
		err = next
	}
	return out
}

func ownMessage(err, next error) string {
	if e, ok := err.(*Error); ok {
		return e.Message
	}
	msg := err.Error()
	if next == nil {
		return msg
	}
	inner := next.Error()
	if trimmed, ok := strings.CutSuffix(msg, inner); ok {
		return strings.TrimSuffix(strings.TrimSpace(trimmed), ":")
	}
	return msg
}
