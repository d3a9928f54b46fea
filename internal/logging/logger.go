// Package logging provides the process-wide zap logger.
//
// The TUI owns stdout, so log output always goes to a file. When no level is
// configured the logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is shared with request goroutines.
var logger atomic.Pointer[zap.Logger]

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// Valid values: "debug", "info", "warn", "error".
const LogLevelEnvVar = "REQSCOPE_LOG_LEVEL"

// DefaultLogFile returns the log path used when none is given.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "reqscope.log")
}

// Initialize creates the logger writing to path at the given level.
// If level is empty, REQSCOPE_LOG_LEVEL is consulted; if that is empty too,
// logging is disabled.
func Initialize(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		SetLogger(nil)
		return nil
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	if path == "" {
		path = DefaultLogFile()
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(built)

	return nil
}

// GetLogger returns the global logger instance.
func GetLogger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

var nop = zap.NewNop()

// SetLogger replaces the global logger. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = GetLogger().Sync()
}
