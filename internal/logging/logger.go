// Package logging builds the zap logger for the newsroom client.
//
// The TUI owns stdout and stderr while it is running, so by default logs are
// written to a file under the user cache directory. Non-TUI subcommands are
// free to log to stderr by leaving the file unset with format "console".
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/fyrsmithlabs/newsroom/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger from the log section of the client config.
//
// When cfg.File is empty and toFile is true, the default log path
// (<user cache dir>/newsroom/newsroom.log) is used. When toFile is false and
// no file is configured, logs go to stderr.
func New(cfg config.LogConfig, toFile bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	sink, err := openSink(cfg.File, toFile)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// DefaultLogPath returns <user cache dir>/newsroom/newsroom.log.
func DefaultLogPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(dir, "newsroom", "newsroom.log"), nil
}

func openSink(file string, toFile bool) (zapcore.WriteSyncer, error) {
	if file == "" && !toFile {
		return zapcore.Lock(os.Stderr), nil
	}
	if file == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		file = p
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", file, err)
	}
	return zapcore.Lock(f), nil
}

// newEncoder creates a JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

// Sync flushes the logger, ignoring the harmless EINVAL/ENOTTY that syncing
// a terminal returns on Linux.
func Sync(logger *zap.Logger) error {
	err := logger.Sync()
	if err != nil && isTTYSyncError(err) {
		return nil
	}
	return err
}

func isTTYSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
