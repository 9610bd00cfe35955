// Package logger provides leveled logging for Sercha Connect.
// Debug and info messages are only printed in verbose mode (--verbose);
// warnings and errors are always printed. Output goes through zap so the
// HTTP server can share the same core for request logs.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	// FormatConsole prints "[LEVEL] message" lines.
	FormatConsole Format = "console"
	// FormatJSON prints one JSON object per line.
	FormatJSON Format = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatConsole
	base              = build(false, os.Stderr, FormatConsole)
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build(verbose, output, format)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(verbose, output, format)
}

// SetFormat switches between console and JSON encoding.
// Unknown values fall back to console.
func SetFormat(f Format) {
	mu.Lock()
	defer mu.Unlock()
	if f != FormatJSON {
		f = FormatConsole
	}
	format = f
	base = build(verbose, output, format)
}

// Zap returns the underlying logger for components that take a *zap.Logger.
func Zap() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug prints a message if verbose mode is enabled.
func Debug(msg string, args ...any) {
	Zap().Debug(sprintf(msg, args))
}

// Info prints an informational message if verbose mode is enabled.
func Info(msg string, args ...any) {
	Zap().Info(sprintf(msg, args))
}

// Warn prints a warning message.
func Warn(msg string, args ...any) {
	Zap().Warn(sprintf(msg, args))
}

// Error prints an error message.
func Error(msg string, args ...any) {
	Zap().Error(sprintf(msg, args))
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose && format == FormatConsole {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func sprintf(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func build(verbose bool, w io.Writer, f Format) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var enc zapcore.Encoder
	if f == FormatJSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			LevelKey:         "L",
			MessageKey:       "M",
			ConsoleSeparator: " ",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel: func(l zapcore.Level, pae zapcore.PrimitiveArrayEncoder) {
				pae.AppendString("[" + l.CapitalString() + "]")
			},
			EncodeDuration: zapcore.StringDurationEncoder,
		})
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}
