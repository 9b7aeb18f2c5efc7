package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeSessionNotFound, "test error message")

	if err.Code != ErrCodeSessionNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeSessionNotFound, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read file", cause)

	if err.Code != ErrCodeFileReadFailed {
		t.Errorf("expected code %s, got %s", ErrCodeFileReadFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *SprintdeckError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeConfigInvalid, "invalid config"),
			wantCode: "CONFIG-002",
			wantMsg:  "invalid config",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeFileReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantCode: "IO-002",
			wantMsg:  "read failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()

			if !strings.Contains(msg, tt.wantCode) {
				t.Errorf("expected error to contain code %s, got: %s", tt.wantCode, msg)
			}

			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("expected error to contain message %s, got: %s", tt.wantMsg, msg)
			}
		})
	}
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrCodeSessionExpired, "session expired").
		WithSuggestion("log in again").
		WithSuggestion("check the clock")

	if len(err.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(err.Suggestions))
	}

	msg := err.Error()
	if !strings.Contains(msg, "Suggestions:") {
		t.Errorf("expected suggestions section in error output")
	}
	if !strings.Contains(msg, "log in again") {
		t.Errorf("expected suggestion text in error output")
	}
}

func TestWithDocs(t *testing.T) {
	err := New(ErrCodeAPIUnauthorized, "unauthorized").
		WithDocs("https://example.com/docs/auth")

	msg := err.Error()
	if !strings.Contains(msg, "Documentation: https://example.com/docs/auth") {
		t.Errorf("expected docs link in error output, got: %s", msg)
	}
}

func TestCommonConstructors(t *testing.T) {
	if err := NewSessionNotFoundError(); err.Code != ErrCodeSessionNotFound {
		t.Errorf("unexpected code %s", err.Code)
	}
	if err := NewUnauthorizedError(401); err.Code != ErrCodeAPIUnauthorized {
		t.Errorf("unexpected code %s", err.Code)
	}
	if err := NewWriteFailedError("create project", fmt.Errorf("boom")); err.Code != ErrCodeAPIWriteFailed {
		t.Errorf("unexpected code %s", err.Code)
	}
}
