package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NewPathNotFoundError("/no/such/dir")
	if !strings.Contains(err.Error(), "PATH_NOT_FOUND") {
		t.Errorf("error string should contain code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "/no/such/dir") {
		t.Errorf("error string should contain path: %s", err.Error())
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewRemoteError(cause)

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error string should contain cause: %s", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"not found", NewPathNotFoundError("/x"), PathNotFound},
		{"no context", NewNoContextError(), NoContext},
		{"remote", NewRemoteError(fmt.Errorf("boom")), RemoteError},
		{"write", NewWriteError("/out", fmt.Errorf("denied")), WriteError},
		{"invalid param", NewInvalidParameterError("query", "missing"), InvalidParameter},
		{"plain error", fmt.Errorf("plain"), InternalError},
		{"wrapped cbx error", fmt.Errorf("outer: %w", NewNoContextError()), NoContext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := NewNoContextError()
	if !IsCode(err, NoContext) {
		t.Error("IsCode should match NO_CONTEXT")
	}
	if IsCode(err, RemoteError) {
		t.Error("IsCode should not match a different code")
	}
}

func TestWithDetails(t *testing.T) {
	err := NewInvalidParameterError("max_tokens", "must be positive").
		WithDetails(map[string]interface{}{"got": -1})
	if err.Details == nil {
		t.Error("details should be set")
	}
}
