// ABOUTME: Process-wide structured logger built on charmbracelet/log.
// ABOUTME: Writes to a rotating file; mirrors to stderr in debug mode.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the global logger instance. Nil until Init is called.
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug bool
	// Dir receives habits.log. Empty disables file output.
	Dir string
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	var writers []io.Writer

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "habits.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		writers = append(writers, os.Stderr)
	}

	var writer io.Writer = io.Discard
	if len(writers) > 0 {
		writer = io.MultiWriter(writers...)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "habits",
	})

	return nil
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
