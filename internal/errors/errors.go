package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeNotAuthenticated   ErrorCode = "AUTH-001"
	ErrCodeInvalidCredentials ErrorCode = "AUTH-002"
	ErrCodeSessionRejected    ErrorCode = "AUTH-003"
	ErrCodeLoginFailed        ErrorCode = "AUTH-004"
	ErrCodeForbidden          ErrorCode = "AUTH-005"

	// API errors (API-001 to API-099)
	ErrCodeAPIUnavailable ErrorCode = "API-001"
	ErrCodeAPIRejected    ErrorCode = "API-002"
	ErrCodeAPINotFound    ErrorCode = "API-003"

	// Route errors (ROUTE-001 to ROUTE-099)
	ErrCodeRouteNotFound     ErrorCode = "ROUTE-001"
	ErrCodeRouteTableInvalid ErrorCode = "ROUTE-002"
	ErrCodeRedirectLoop      ErrorCode = "ROUTE-003"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigLoad    ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
	ErrCodeDirectoryFailed ErrorCode = "IO-003"
)

// TourneyError represents an error with a code and recovery suggestions
type TourneyError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *TourneyError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *TourneyError) Unwrap() error {
	return e.Cause
}

// New creates a new TourneyError
func New(code ErrorCode, message string) *TourneyError {
	return &TourneyError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new TourneyError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *TourneyError {
	return &TourneyError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *TourneyError) WithSuggestion(suggestion string) *TourneyError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// HasCode reports whether any error in err's chain is a TourneyError with code.
func HasCode(err error, code ErrorCode) bool {
	var te *TourneyError
	for err != nil {
		if !stderrors.As(err, &te) {
			return false
		}
		if te.Code == code {
			return true
		}
		err = te.Cause
	}
	return false
}

// NewNotAuthenticatedError is returned when a command needs a session and none is stored
func NewNotAuthenticatedError() *TourneyError {
	return New(ErrCodeNotAuthenticated, "not logged in").
		WithSuggestion("Run 'tourney auth login' to authenticate")
}

// NewForbiddenError is returned when the session role may not open a screen
func NewForbiddenError(route string, role string) *TourneyError {
	if role == "" {
		role = "unknown"
	}
	return New(ErrCodeForbidden, fmt.Sprintf("role %q may not access %s", role, route)).
		WithSuggestion("Log in with an account that has the required role").
		WithSuggestion("Run 'tourney route list' to see which roles each screen needs")
}

// NewAPIUnavailableError is returned when the backend cannot be reached
func NewAPIUnavailableError(baseURL string, cause error) *TourneyError {
	return Wrap(ErrCodeAPIUnavailable, fmt.Sprintf("cannot reach the tournament API at %s", baseURL), cause).
		WithSuggestion("Make sure the backend is running").
		WithSuggestion("Set the API address with --api-url or TOURNEY_API_URL")
}

// NewRouteNotFoundError is returned when a path matches no declared route
func NewRouteNotFoundError(path string) *TourneyError {
	return New(ErrCodeRouteNotFound, fmt.Sprintf("no route matches %s", path)).
		WithSuggestion("Run 'tourney route list' to see the declared routes")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *TourneyError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Run 'tourney config show' to inspect the effective configuration")
}

// NewFileWriteError creates a write failure error
func NewFileWriteError(path string, cause error) *TourneyError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write %s", path), cause).
		WithSuggestion("Verify the directory exists and you have write permissions")
}
