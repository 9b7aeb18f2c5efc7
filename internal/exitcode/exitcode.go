package exitcode

import (
	"os"

	"github.com/felixgeelhaar/sprintdeck/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or session failure
	AuthError = 3

	// NotFound indicates the requested resource does not exist
	NotFound = 4

	// NetworkError indicates the backend could not be reached
	NetworkError = 5

	// ConfigError indicates invalid configuration
	ConfigError = 6

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code based on its
// sprintdeck error code, falling back to a general error.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	deckErr, ok := err.(*errors.SprintdeckError)
	if !ok {
		return GeneralError
	}

	switch deckErr.Code {
	case errors.ErrCodeSessionNotFound,
		errors.ErrCodeSessionExpired,
		errors.ErrCodeSessionDecrypt,
		errors.ErrCodeAPIUnauthorized:
		return AuthError
	case errors.ErrCodeAPINotFound:
		return NotFound
	case errors.ErrCodeAPIRequest:
		return NetworkError
	case errors.ErrCodeConfigInvalid,
		errors.ErrCodeConfigUnmarshal,
		errors.ErrCodeConfigNotFound:
		return ConfigError
	default:
		return GeneralError
	}
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case NotFound:
		return "Resource not found"
	case NetworkError:
		return "Network error"
	case ConfigError:
		return "Configuration error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
