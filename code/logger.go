package code

import "log"

// Logger is an optional interface for observability during code execution.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort; Logf should not panic.
type Logger interface {
	// Logf logs a formatted message.
	Logf(format string, args ...any)
}

// StdLogger adapts the standard library logger to the Logger interface.
type StdLogger struct {
	// Prefix is prepended to every message.
	Prefix string
}

func (l StdLogger) Logf(format string, args ...any) {
	log.Printf(l.Prefix+format, args...)
}
