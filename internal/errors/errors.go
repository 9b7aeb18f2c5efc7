package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionNotFound ErrorCode = "SESSION-001"
	ErrCodeSessionInvalid  ErrorCode = "SESSION-002"
	ErrCodeSessionExpired  ErrorCode = "SESSION-003"
	ErrCodeSessionDecrypt  ErrorCode = "SESSION-004"

	// Access errors (ACCESS-001 to ACCESS-099)
	ErrCodeAccessUnknownRole ErrorCode = "ACCESS-001"
	ErrCodeAccessDenied      ErrorCode = "ACCESS-002"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest      ErrorCode = "API-001"
	ErrCodeAPIResponse     ErrorCode = "API-002"
	ErrCodeAPIUnauthorized ErrorCode = "API-003"
	ErrCodeAPINotFound     ErrorCode = "API-004"
	ErrCodeAPIWriteFailed  ErrorCode = "API-005"

	// Cache errors (CACHE-001 to CACHE-099)
	ErrCodeCacheFetch ErrorCode = "CACHE-001"
	ErrCodeCacheKey   ErrorCode = "CACHE-002"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

// SprintdeckError represents an enhanced error with code, suggestions, and documentation
type SprintdeckError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *SprintdeckError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *SprintdeckError) Unwrap() error {
	return e.Cause
}

// New creates a new SprintdeckError
func New(code ErrorCode, message string) *SprintdeckError {
	return &SprintdeckError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new SprintdeckError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *SprintdeckError {
	return &SprintdeckError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *SprintdeckError) WithSuggestion(suggestion string) *SprintdeckError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *SprintdeckError) WithSuggestions(suggestions ...string) *SprintdeckError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *SprintdeckError) WithDocs(url string) *SprintdeckError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewSessionNotFoundError creates a missing session error
func NewSessionNotFoundError() *SprintdeckError {
	return New(ErrCodeSessionNotFound, "no active session").
		WithSuggestion("Run 'sprintdeck auth login' to authenticate").
		WithSuggestion("Check that the session file was not removed")
}

// NewSessionExpiredError creates an expired session error
func NewSessionExpiredError() *SprintdeckError {
	return New(ErrCodeSessionExpired, "session has expired").
		WithSuggestion("Run 'sprintdeck auth login' to re-authenticate")
}

// NewUnauthorizedError creates an authentication failure error
func NewUnauthorizedError(status int) *SprintdeckError {
	return New(ErrCodeAPIUnauthorized, fmt.Sprintf("request rejected with status %d", status)).
		WithSuggestion("Your token may be expired or invalid").
		WithSuggestion("Run 'sprintdeck auth login' to re-authenticate")
}

// NewWriteFailedError creates a mutation failure error
func NewWriteFailedError(operation string, cause error) *SprintdeckError {
	return Wrap(ErrCodeAPIWriteFailed, fmt.Sprintf("%s failed", operation), cause).
		WithSuggestion("Check your network connection and retry").
		WithSuggestion("Run 'sprintdeck auth status' to verify your session")
}

// NewConfigUnmarshalError creates a config parse error
func NewConfigUnmarshalError(path string, cause error) *SprintdeckError {
	return Wrap(ErrCodeConfigUnmarshal, fmt.Sprintf("failed to parse config file: %s", path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion("Ensure the file is valid YAML")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *SprintdeckError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}
