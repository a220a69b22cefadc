// Package debug provides tracing for the cmpreflex interpreter.
//
// Tracing is selected per function with the -debug flag: functions whose
// SSA name matches the pattern get a development zap logger on stderr and
// a summary of every interpreter run; all others get a no-op logger.
package debug

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/tools/go/ssa"
)

// Tracer decides which functions are traced.
type Tracer struct {
	filter *regexp.Regexp
	logger *zap.Logger
}

// NewTracer creates a Tracer for pattern. An empty pattern disables tracing.
func NewTracer(pattern string) (*Tracer, error) {
	if pattern == "" {
		return &Tracer{logger: zap.NewNop()}, nil
	}
	filter, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("debug: invalid pattern %q: %w", pattern, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("debug: build logger: %w", err)
	}
	return &Tracer{filter: filter, logger: logger}, nil
}

// Enabled reports whether fn is traced.
func (t *Tracer) Enabled(fn *ssa.Function) bool {
	return t != nil && t.filter != nil && fn != nil && t.filter.MatchString(fn.String())
}

// For returns the logger for fn's interpreter runs.
func (t *Tracer) For(fn *ssa.Function) *zap.Logger {
	if !t.Enabled(fn) {
		return zap.NewNop()
	}
	return t.logger.With(zap.Stringer("func", fn))
}

// Sync flushes buffered log entries.
func (t *Tracer) Sync() {
	if t != nil && t.logger != nil {
		_ = t.logger.Sync()
	}
}
