// Package logging builds the process-wide structured logger.
package logging

import "go.uber.org/zap"

// New builds a zap logger at the given level. An unparseable level falls back
// to info rather than failing startup. Development mode switches to the
// human-readable console encoding with debug enabled.
func New(level string, development bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl
	return cfg.Build()
}
