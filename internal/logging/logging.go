// Package logging builds the structured logger used across the tool.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" or "console"

	// OutputPath defaults to stderr so reports piped to stdout stay clean.
	OutputPath string
}

// New creates a logger. An unknown level falls back to info; an unknown
// format is an error.
func New(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	switch config.Format {
	case "", "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.DisableStacktrace = true
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", config.Format)
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	outputPath := config.OutputPath
	if outputPath == "" {
		outputPath = "stderr"
	}
	zapConfig.OutputPaths = []string{outputPath}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	return zapConfig.Build()
}
