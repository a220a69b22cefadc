package debug

import (
	"regexp"

	"go.uber.org/zap"
)

// Test helpers for Tracer internals.

// NewTracerWithLogger creates a Tracer that writes to logger.
func NewTracerWithLogger(filter *regexp.Regexp, logger *zap.Logger) *Tracer {
	return &Tracer{filter: filter, logger: logger}
}

// Logger returns the underlying logger.
func (t *Tracer) Logger() *zap.Logger {
	if t == nil || t.logger == nil {
		return zap.NewNop()
	}
	return t.logger
}
