package log

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/tourney/internal/errors"
)

// Logger wraps slog with the coded-error and credential handling the
// client needs
type Logger struct {
	slog *slog.Logger
}

// secretKeys are attribute keys whose values never reach the output as is
var secretKeys = map[string]bool{
	"password":      true,
	"authorization": true,
	"access_token":  true,
	"token":         true,
}

// New creates a Logger from the configuration
func New(config Config) *Logger {
	if config.Writer == nil {
		config.Writer = DefaultConfig().Writer
	}
	opts := &slog.HandlerOptions{
		Level:       config.Level.ToSlogLevel(),
		AddSource:   config.AddSource,
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Writer, opts)
	default:
		handler = slog.NewTextHandler(config.Writer, opts)
	}
	return &Logger{slog: slog.New(handler)}
}

// redact replaces secret values with their fingerprint
func redact(groups []string, a slog.Attr) slog.Attr {
	if !secretKeys[strings.ToLower(a.Key)] {
		return a
	}
	if fp := Fingerprint(a.Value.String()); fp != "" {
		return slog.String(a.Key, "redacted:"+fp)
	}
	return a
}

// Default creates a logger with the default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// With returns a Logger that adds the attributes to every record
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// WithError adds error details to the logger.
// Coded errors contribute their code and cause separately.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	var te *errors.TourneyError
	if stderrors.As(err, &te) {
		args := []any{"error", te.Message, "error_code", string(te.Code)}
		if te.Cause != nil {
			args = append(args, "cause", te.Cause.Error())
		}
		return l.With(args...)
	}
	return l.With("error", err.Error())
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Enabled reports whether records at level would be written
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.slog.Enabled(ctx, level.ToSlogLevel())
}
