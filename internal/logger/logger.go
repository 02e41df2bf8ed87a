// Package logger provides process-wide logging for docmatch.
//
// The package-level helpers (Debug, Info, Warn, Error, Section) write through
// a zap logger. Debug output and section headers only appear in verbose mode.
// Adapters that want structured fields use L().
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Output formats accepted by Init.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config configures the process logger.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is json, console, or auto (console on a terminal, json otherwise).
	Format string
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatConsole
	level             = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base    *zap.Logger
	sugar   *zap.SugaredLogger
)

func init() {
	rebuild()
}

// Init applies cfg to the process logger.
func Init(cfg Config) error {
	lvl := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
		lvl = parsed
	}

	f := strings.ToLower(cfg.Format)
	switch f {
	case "", FormatAuto:
		f = FormatJSON
		if term.IsTerminal(int(os.Stderr.Fd())) {
			f = FormatConsole
		}
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	mu.Lock()
	defer mu.Unlock()
	format = f
	if !verbose {
		level.SetLevel(lvl)
	}
	rebuild()
	return nil
}

// SetVerbose enables or disables verbose (debug) logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
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
	rebuild()
}

// SetLogger replaces the underlying zap logger. Used by tests to install
// an observer core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugar = l.Sugar()
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered log entries.
func Sync() error {
	return L().Sync()
}

// Debug logs a message at debug level.
func Debug(format string, args ...any) {
	s().Debugf(format, args...)
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	if IsVerbose() {
		s().Debugf("=== %s ===", name)
	}
}

// Info logs an informational message.
func Info(format string, args ...any) {
	s().Infof(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	s().Warnf(format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	s().Errorf(format, args...)
}

func s() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// rebuild recreates the logger from the current settings. Callers hold mu.
func rebuild() {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == FormatJSON {
		enc = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encoderCfg)
	}

	base = zap.New(zapcore.NewCore(enc, zapcore.AddSync(output), level))
	sugar = base.Sugar()
}
