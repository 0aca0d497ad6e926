package ux

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/platform"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a recovery suggestion to API and transport failures.
// Coded errors already carry their own suggestions and pass through.
func EnhanceError(err error, baseURL string) error {
	if err == nil {
		return nil
	}

	var coded *terrors.TourneyError
	if errors.As(err, &coded) && len(coded.Suggestions) > 0 {
		return err
	}

	var te *platform.TransportError
	if errors.As(err, &te) {
		return terrors.NewAPIUnavailableError(baseURL, err)
	}

	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return NewErrorWithSuggestion(err,
				"Your session was rejected. Run 'tourney auth login' to sign in again")
		case http.StatusForbidden:
			return NewErrorWithSuggestion(err,
				"Your role may not perform this action. Run 'tourney auth status' to check it")
		case http.StatusNotFound:
			return NewErrorWithSuggestion(err,
				"Check the id; list commands such as 'tourney matches list' show valid ids")
		case http.StatusUnprocessableEntity:
			return NewErrorWithSuggestion(err,
				"The server rejected the input; fix the fields named above")
		}
		if apiErr.StatusCode >= 500 {
			return NewErrorWithSuggestion(err,
				"The backend failed; check its logs and retry")
		}
		return err
	}

	if strings.Contains(err.Error(), "permission denied") {
		return NewErrorWithSuggestion(err,
			"Check permissions of the config and state directories")
	}
	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context, baseURL string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err, baseURL)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
