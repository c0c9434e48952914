// Package logging builds the zap logger used for diagnostics. Human-facing
// output goes through pkg/render on stdout; the logger stays on stderr so
// piping fsort output remains clean.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the application logger. With debug enabled it uses the
// development config at debug level; otherwise a production config that only
// surfaces warnings and errors.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and for code paths
// that run before configuration is resolved.
func Nop() *zap.Logger {
	return zap.NewNop()
}
