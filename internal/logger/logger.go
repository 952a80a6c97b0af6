// Package logger provides verbose logging for the shardcat CLI.
// When verbose mode is enabled via the --verbose flag or the log.verbose
// setting, pipeline messages are printed to stderr so users can follow
// ingestion and query evaluation.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	sink    = zapcore.Lock(zapcore.AddSync(os.Stderr))
	log     = zap.NewNop()
	plain   = zap.NewNop()
)

// levelEncoder renders entries as "[LEVEL] message".
var levelEncoder = zapcore.EncoderConfig{
	MessageKey:       "msg",
	LevelKey:         "level",
	EncodeLevel:      bracketLevel,
	ConsoleSeparator: " ",
	LineEnding:       "\n",
}

// plainEncoder renders the bare message.
var plainEncoder = zapcore.EncoderConfig{
	MessageKey: "msg",
	LineEnding: "\n",
}

func bracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// rebuild swaps the loggers for the current settings. Callers hold mu.
func rebuild() {
	if !verbose {
		log = zap.NewNop()
		plain = zap.NewNop()
		return
	}
	log = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(levelEncoder), sink, zapcore.DebugLevel))
	plain = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(plainEncoder), sink, zapcore.DebugLevel))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sink = zapcore.Lock(zapcore.AddSync(w))
	rebuild()
}

// L returns the structured logger. It discards everything unless
// verbose mode is enabled.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Debug(fmt.Sprintf(format, args...))
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	p := plain
	mu.RUnlock()
	p.Info(fmt.Sprintf("\n=== %s ===", name))
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	L().Info(fmt.Sprintf(format, args...))
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	L().Warn(fmt.Sprintf(format, args...))
}
