// Package errors defines stable error codes for all CBX failure modes.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// PathNotFound indicates the project path does not exist or is not a directory
	PathNotFound ErrorCode = "PATH_NOT_FOUND"
	// NoContext indicates an operation requiring a loaded project ran before any load
	NoContext ErrorCode = "NO_CONTEXT"
	// RemoteError indicates the model API call failed or returned an error
	RemoteError ErrorCode = "REMOTE_ERROR"
	// WriteError indicates the export destination is not writable
	WriteError ErrorCode = "WRITE_ERROR"
	// InvalidParameter indicates a missing or malformed tool parameter
	InvalidParameter ErrorCode = "INVALID_PARAMETER"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// BudgetExhausted is a warning code, not an error: every candidate file
// exceeded the token budget and the context is empty.
const BudgetExhausted = "BUDGET_EXHAUSTED"

// CbxError represents a CBX error with a stable code and message
type CbxError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new CbxError
func New(code ErrorCode, message string, cause error) *CbxError {
	return &CbxError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *CbxError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CbxError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *CbxError) WithDetails(details interface{}) *CbxError {
	e.Details = details
	return e
}

// NewPathNotFoundError creates a PATH_NOT_FOUND error for a project path
func NewPathNotFoundError(path string) *CbxError {
	return New(PathNotFound, fmt.Sprintf("project path %q does not exist or is not a directory", path), nil)
}

// NewNoContextError creates a NO_CONTEXT error. The message tells the
// caller how to recover, same as the original server did.
func NewNoContextError() *CbxError {
	return New(NoContext, "no codebase loaded; call loadCodebase first", nil)
}

// NewRemoteError wraps a model API failure
func NewRemoteError(cause error) *CbxError {
	return New(RemoteError, "model API call failed", cause)
}

// NewWriteError wraps an export write failure
func NewWriteError(destination string, cause error) *CbxError {
	return New(WriteError, fmt.Sprintf("cannot write export to %q", destination), cause)
}

// NewInvalidParameterError creates an INVALID_PARAMETER error
func NewInvalidParameterError(name, reason string) *CbxError {
	msg := fmt.Sprintf("invalid parameter %q", name)
	if reason != "" {
		msg += ": " + reason
	}
	return New(InvalidParameter, msg, nil)
}

// NewOperationError wraps an unexpected failure during an operation
func NewOperationError(operation string, cause error) *CbxError {
	return New(InternalError, fmt.Sprintf("operation %q failed", operation), cause)
}

// CodeOf extracts the error code from err, or INTERNAL_ERROR if err is
// not a CbxError.
func CodeOf(err error) ErrorCode {
	var ce *CbxError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return InternalError
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
