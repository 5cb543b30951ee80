package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogsDir is where InitLogger writes log files
const LogsDir = "logs"

// InitLogger builds the application logger: colored console output at Info (Debug when verbose)
// plus a JSON file at Debug named logs/<env>_<timestamp>.log. The returned func flushes and
// closes the file.
func InitLogger(env string, verbose bool) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(LogsDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(LogsDir, fmt.Sprintf("%s_%s.log", env, timestamp))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	consoleLevel := zapcore.InfoLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	logger := NewLogger(zapcore.Lock(os.Stdout), zapcore.AddSync(logFile), consoleLevel).
		With(zap.String("env", env))

	cleanup := func() {
		_ = logger.Sync()
		_ = logFile.Close()
	}

	return logger, cleanup, nil
}

// NewLogger tees a human readable console core at consoleLevel and a JSON core at Debug
func NewLogger(console, file zapcore.WriteSyncer, consoleLevel zapcore.Level) *zap.Logger {
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), console, consoleLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), file, zapcore.DebugLevel),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}
