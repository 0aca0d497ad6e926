package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/felixgeelhaar/tourney/internal/errors"
)

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Format: FormatJSON, Writer: &buf})

	logger.With("component", "session").Info("login succeeded", "role", "coach")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "login succeeded" {
		t.Errorf("expected msg 'login succeeded', got %v", entry["msg"])
	}
	if entry["component"] != "session" {
		t.Errorf("expected component attribute, got %v", entry["component"])
	}
	if entry["role"] != "coach" {
		t.Errorf("expected role attribute, got %v", entry["role"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Writer: &buf})

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn line, got %q", out)
	}
	if logger.Enabled(context.Background(), LevelInfo) {
		t.Error("info should not be enabled at warn level")
	}
}

func TestWithErrorCodedError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Format: FormatJSON, Writer: &buf})

	err := fmt.Errorf("command: %w", errors.Wrap(errors.ErrCodeAPIUnavailable, "backend down", fmt.Errorf("dial tcp: refused")))
	logger.WithError(err).Error("request failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["error_code"] != "API-001" {
		t.Errorf("expected error_code API-001, got %v", entry["error_code"])
	}
	if entry["cause"] != "dial tcp: refused" {
		t.Errorf("expected cause, got %v", entry["cause"])
	}
}

func TestWithErrorNil(t *testing.T) {
	logger := New(Discard())
	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the same logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("expected json format, got %v (%v)", f, err)
	}
	if f, err := ParseFormat("console"); err != nil || f != FormatText {
		t.Errorf("expected text format, got %v (%v)", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("token-a")
	if len(a) != 12 {
		t.Errorf("expected 12 hex chars, got %q", a)
	}
	if a != Fingerprint("token-a") {
		t.Error("fingerprint must be stable")
	}
	if a == Fingerprint("token-b") {
		t.Error("different secrets should not collide")
	}
	if strings.Contains(a, "token") {
		t.Error("fingerprint must not contain the secret")
	}
	if Fingerprint("") != "" {
		t.Error("empty secret has no fingerprint")
	}
}

func TestDefaultLoggerFallback(t *testing.T) {
	SetDefaultLogger(nil)
	if DefaultLogger() == nil {
		t.Fatal("expected lazily created default logger")
	}
	custom := New(Discard())
	SetDefaultLogger(custom)
	if DefaultLogger() != custom {
		t.Error("expected configured default logger")
	}
	SetDefaultLogger(nil)
}

func TestSecretsRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Format: FormatJSON, Writer: &buf})

	logger.Info("sending request", "Authorization", "Bearer abc.def", "password", "hunter2", "email", "coach@example.com")

	out := buf.String()
	for _, secret := range []string{"abc.def", "hunter2"} {
		if strings.Contains(out, secret) {
			t.Errorf("secret %q leaked into %q", secret, out)
		}
	}
	if !strings.Contains(out, "redacted:"+Fingerprint("hunter2")) {
		t.Errorf("expected password fingerprint, got %q", out)
	}
	if !strings.Contains(out, "coach@example.com") {
		t.Errorf("non-secret attribute missing from %q", out)
	}
}

func TestDefaultLogger(t *testing.T) {
	first := DefaultLogger()
	if first == nil || DefaultLogger() != first {
		t.Fatal("DefaultLogger should return the same logger until replaced")
	}

	replacement := New(Discard())
	SetDefaultLogger(replacement)
	t.Cleanup(func() { SetDefaultLogger(first) })
	if DefaultLogger() != replacement {
		t.Error("SetDefaultLogger did not replace the process logger")
	}
}
