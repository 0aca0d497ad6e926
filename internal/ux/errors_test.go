package ux

import (
	"errors"
	"strings"
	"testing"

	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/platform"
)

func TestNewErrorWithSuggestion(t *testing.T) {
	if NewErrorWithSuggestion(nil, "x") != nil {
		t.Fatal("nil error should stay nil")
	}

	err := NewErrorWithSuggestion(errors.New("something failed"), "try this fix")
	if !strings.Contains(err.Error(), "something failed") || !strings.Contains(err.Error(), "Suggestion: try this fix") {
		t.Errorf("unexpected message %q", err.Error())
	}

	bare := NewErrorWithSuggestion(errors.New("plain"), "")
	if bare.Error() != "plain" {
		t.Errorf("unexpected message %q", bare.Error())
	}
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
		code     terrors.ErrorCode
	}{
		{"transport", &platform.TransportError{Method: "GET", URL: "http://api/x", Err: errors.New("connection refused")}, "cannot reach the tournament API at http://api", terrors.ErrCodeAPIUnavailable},
		{"401", &platform.APIError{Method: "GET", Path: "/auth/me", StatusCode: 401}, "tourney auth login", ""},
		{"403", &platform.APIError{Method: "GET", Path: "/admin/users", StatusCode: 403, Detail: "Not enough permissions"}, "auth status", ""},
		{"404", &platform.APIError{Method: "GET", Path: "/matches/9", StatusCode: 404}, "matches list", ""},
		{"500", &platform.APIError{Method: "GET", Path: "/matches", StatusCode: 502}, "backend failed", ""},
		{"coded passthrough", terrors.NewNotAuthenticatedError(), "not logged in", terrors.ErrCodeNotAuthenticated},
		{"permission", errors.New("open /x: permission denied"), "Check permissions", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnhanceError(tt.err, "http://api")
			if !strings.Contains(got.Error(), tt.contains) {
				t.Errorf("EnhanceError() = %q, want it to contain %q", got.Error(), tt.contains)
			}
			if tt.code != "" && !terrors.HasCode(got, tt.code) {
				t.Errorf("EnhanceError() lost code %s", tt.code)
			}
			if !errors.Is(got, tt.err) {
				t.Error("enhanced error must wrap the original")
			}
		})
	}

	if EnhanceError(nil, "") != nil {
		t.Error("nil stays nil")
	}
}

func TestFormatError(t *testing.T) {
	err := FormatError(errors.New("boom"), "list matches", "")
	if err.Error() != "list matches: boom" {
		t.Errorf("FormatError() = %q", err.Error())
	}
}
