package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// DefaultLogger creates a logger using slog.Default()
func DefaultLogger() *Logger {
	return &Logger{
		Logger: slog.Default(),
	}
}

// NewLogger creates a logger configured from environment variables:
// - SYSPROBE_LOG_LEVEL: DEBUG, INFO, WARN, ERROR (default: INFO)
// - SYSPROBE_LOG_FORMAT: json or text (default: text)
// - SYSPROBE_LOG_OUTPUT: stdout, stderr, or file path (default: stderr)
func NewLogger() *Logger {
	return New(
		os.Getenv("SYSPROBE_LOG_LEVEL"),
		os.Getenv("SYSPROBE_LOG_FORMAT"),
		os.Getenv("SYSPROBE_LOG_OUTPUT"),
	)
}

// New creates a logger from explicit settings. Empty values fall back to
// INFO, text and stderr. stdout is kept free for the snapshot command.
func New(level, format, output string) *Logger {
	return &Logger{
		Logger: slog.New(newHandler(openOutput(output), parseLogLevel(level), format)),
	}
}

// NewWithWriter creates a logger writing to w, mostly for tests.
func NewWithWriter(w io.Writer, level, format string) *Logger {
	return &Logger{
		Logger: slog.New(newHandler(w, parseLogLevel(level), format)),
	}
}

// SLog exposes the underlying slog.Logger for libraries that need it.
func (l *Logger) SLog() *slog.Logger {
	return l.Logger
}

func newHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func openOutput(output string) io.Writer {
	switch output {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stderr if file can't be opened
			return os.Stderr
		}
		return file
	}
}

// parseLogLevel parses log level from string
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefaultLogger sets the logger as the default slog logger
func SetDefaultLogger(l *Logger) {
	slog.SetDefault(l.Logger)
}
