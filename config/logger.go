package config

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger initializes a Zap logger with the specified level and returns it
func InitLogger(logLevelStr string) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(ParseLevel(logLevelStr))
	// Answers go to stdout; logs stay on stderr
	config.OutputPaths = []string{"stderr"}

	return config.Build()
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(logLevelStr string) zapcore.Level {
	switch strings.ToLower(logLevelStr) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
