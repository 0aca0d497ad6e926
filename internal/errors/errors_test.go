package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeRouteNotFound, "test error message")

	if err.Code != ErrCodeRouteNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeRouteNotFound, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeAPIUnavailable, "backend down", cause)

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *TourneyError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeConfigInvalid, "bad url"),
			wantCode: "CONFIG-001",
			wantMsg:  "bad url",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeFileWriteFailed, "write failed", fmt.Errorf("disk full")),
			wantCode: "IO-002",
			wantMsg:  "disk full",
		},
		{
			name:     "error with suggestion",
			err:      NewNotAuthenticatedError(),
			wantCode: "AUTH-001",
			wantMsg:  "tourney auth login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain '%s', got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	inner := NewRouteNotFoundError("/nowhere")
	outer := Wrap(ErrCodeRedirectLoop, "navigation failed", inner)
	wrapped := fmt.Errorf("command: %w", outer)

	if !HasCode(wrapped, ErrCodeRedirectLoop) {
		t.Error("expected outer code to be found")
	}
	if !HasCode(wrapped, ErrCodeRouteNotFound) {
		t.Error("expected inner code to be found")
	}
	if HasCode(wrapped, ErrCodeConfigLoad) {
		t.Error("unexpected code match")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeConfigLoad) {
		t.Error("plain errors carry no code")
	}
}

func TestForbiddenErrorDefaultsRole(t *testing.T) {
	err := NewForbiddenError("/admin", "")
	if !strings.Contains(err.Error(), `"unknown"`) {
		t.Errorf("expected unknown role placeholder, got %s", err.Error())
	}
}
