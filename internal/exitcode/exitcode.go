package exitcode

import (
	"errors"
	"net/http"
	"os"
	"strings"

	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/platform"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// NotFound indicates the requested resource or route does not exist
	NotFound = 3

	// ConfigError indicates an invalid or unreadable configuration
	ConfigError = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates the backend could not be reached
	NetworkError = 6

	// Interrupted indicates the user cancelled with Ctrl+C
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

// DetermineExitCode maps an error to an exit code. Typed errors decide
// first; cobra's untyped usage errors are recognised by message.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var te *platform.TransportError
	if errors.As(err, &te) {
		return NetworkError
	}
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return AuthError
		case http.StatusNotFound:
			return NotFound
		}
		return GeneralError
	}

	var coded *terrors.TourneyError
	if errors.As(err, &coded) {
		switch {
		case strings.HasPrefix(string(coded.Code), "AUTH-"):
			return AuthError
		case coded.Code == terrors.ErrCodeAPIUnavailable:
			return NetworkError
		case coded.Code == terrors.ErrCodeAPINotFound, coded.Code == terrors.ErrCodeRouteNotFound:
			return NotFound
		case strings.HasPrefix(string(coded.Code), "CONFIG-"):
			return ConfigError
		}
		return GeneralError
	}

	errMsg := strings.ToLower(err.Error())
	for _, marker := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "invalid argument", "required flag", "accepts ", "requires at least", "requires at most"} {
		if strings.Contains(errMsg, marker) {
			return UsageError
		}
	}
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case NotFound:
		return "Not found"
	case ConfigError:
		return "Configuration error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
