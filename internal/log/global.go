package log

import "sync/atomic"

var process atomic.Pointer[Logger]

// SetDefaultLogger replaces the process-wide logger. Packages that are not
// handed a logger explicitly use it.
func SetDefaultLogger(logger *Logger) {
	process.Store(logger)
}

// DefaultLogger returns the process-wide logger, creating one with the
// default configuration on first use.
func DefaultLogger() *Logger {
	if l := process.Load(); l != nil {
		return l
	}
	process.CompareAndSwap(nil, Default())
	return process.Load()
}
