package logging

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// LogLevelEnvVar names the environment variable read when no level is given.
// Unset, empty or "off" keeps logging silent.
const LogLevelEnvVar = "GRANDIOSE_LOG_LEVEL"

// Initialize installs a console logger on stderr at level, falling back to
// $GRANDIOSE_LOG_LEVEL. Stdout stays free for command output such as JSON.
func Initialize(level string) error {
	return InitializeTo(level, os.Stderr)
}

// InitializeTo is Initialize with an explicit destination.
func InitializeTo(level string, w io.Writer) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	lvl, enabled, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if !enabled {
		logger = zap.NewNop()
		return nil
	}

	logger = zap.New(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(zapcore.AddSync(w)), lvl),
		zap.AddCaller(),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	)
	return nil
}

// ParseLevel maps a level name to a zap level. Empty and "off" report
// enabled=false. Names are case-insensitive.
func ParseLevel(s string) (level zapcore.Level, enabled bool, err error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "off" {
		return zapcore.InvalidLevel, false, nil
	}
	level, err = zapcore.ParseLevel(name)
	if err != nil || level > zapcore.ErrorLevel {
		return zapcore.InvalidLevel, false, fmt.Errorf("unknown log level %q (expected debug, info, warn, error or off)", s)
	}
	return level, true, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

// SetLogger installs l and returns a func restoring the previous logger.
// Tests pass the result to t.Cleanup.
func SetLogger(l *zap.Logger) (restore func()) {
	prev := logger
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	return func() { logger = prev }
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogTransition logs a discovery operation state change
func LogTransition(from, to string) {
	Debug("Discovery state transition",
		zap.String("from", from),
		zap.String("to", to),
	)
}

// LogSourceEvent logs a source appearing, expiring or being removed
func LogSourceEvent(event, name, url string) {
	Info("Source event",
		zap.String("event", event),
		zap.String("name", name),
		zap.String("url", url),
	)
}

// LogRawBytes logs raw bytes (useful for debugging probe packets)
func LogRawBytes(label string, data []byte) {
	if !GetLogger().Core().Enabled(zapcore.DebugLevel) {
		return
	}
	Debug(label,
		zap.Int("length", len(data)),
		zap.String("hex", hexDump(data)),
		zap.String("ascii", asciiDump(data)),
	)
}

func hexDump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	// Limit to first 256 bytes for logging
	if len(data) > 256 {
		return hex.EncodeToString(data[:256]) + "..."
	}
	return hex.EncodeToString(data)
}

func asciiDump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) > 256 {
		data = data[:256]
	}

	result := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			result[i] = b
		} else {
			result[i] = '.'
		}
	}
	return string(result)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = logger.Sync()
}
