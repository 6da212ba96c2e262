package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "ASSETBOT_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks ASSETBOT_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return build(level, "stdout")
}

// InitializeToFile is Initialize with output redirected to path.
// The console simulator owns the terminal, so its logs go to a file.
func InitializeToFile(level, path string) error {
	return build(level, path)
}

func build(level, output string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if output == "stdout" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.ErrorOutputPaths = []string{output}
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
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

// LogInteraction logs the start of a user interaction (command or button tap).
func LogInteraction(interactionID string, chatID int64, kind string, detail string) {
	Info("Interaction received",
		zap.String("interaction_id", interactionID),
		zap.Int64("chat_id", chatID),
		zap.String("kind", kind),
		zap.String("detail", detail),
	)
}

// LogRemoteCall logs a completed REST API call at debug level.
func LogRemoteCall(method, path string, statusCode int, attempt int) {
	Debug("REST API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int("attempt", attempt),
	)
}

// LogFailure logs a failure caught at the handler boundary with enough context
// to diagnose it: the interaction, the action tag and the resource path.
// Extra fields are appended.
func LogFailure(interactionID, action, path string, err error, extra ...zap.Field) {
	fields := []zap.Field{
		zap.String("interaction_id", interactionID),
		zap.String("action", action),
		zap.String("path", path),
		zap.Error(err),
	}
	Error("Interaction failed", append(fields, extra...)...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
