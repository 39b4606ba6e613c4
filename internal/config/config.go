// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the given program flags. Tracing implies
// debug level since the instruction trace is logged at debug, quiet mode
// only lets errors through.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()

	switch {
	case flags.Debug || flags.Trace:
		cfg.Level = log.DebugLevel
	case flags.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
