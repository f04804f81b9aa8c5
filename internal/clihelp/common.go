// Package clihelp holds the small operational-output helpers shared by
// the library's demo command-line tools. The library itself
// (internal/allocator) never logs or touches a file; this package is
// strictly for the driver programs under cmd/.
package clihelp

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Version identifies the demo CLI tooling, independent of the library's
// own versioning (the library has none; it is a plain Go API).
const Version = "0.1.0"

// ExitWithError prints an error message and exits with code 1.
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// Logger provides the CLI's operational output: info/debug/warn/error
// lines gated on verbosity, each timestamped. It is not used by the
// library, only by the cmd/ drivers.
type Logger struct {
	Verbose   bool
	DebugMode bool
}

// NewLogger creates a new Logger instance.
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{Verbose: verbose, DebugMode: debug}
}

func (l *Logger) stamp() string { return time.Now().Format("15:04:05") }

// Info logs an info message if verbose output is enabled.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[INFO] %s: %s\n", l.stamp(), fmt.Sprintf(format, args...))
	}
}

// Debug logs a debug message if debug output is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		fmt.Printf("[DEBUG] %s: %s\n", l.stamp(), fmt.Sprintf(format, args...))
	}
}

// Warn logs a warning message unconditionally.
func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Printf("[WARN] %s: %s\n", l.stamp(), fmt.Sprintf(format, args...))
}

// Error logs an error message unconditionally.
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Printf("[ERROR] %s: %s\n", l.stamp(), fmt.Sprintf(format, args...))
}

// LoadJSONFile reads and decodes a JSON file into a fresh T. A missing
// file is not an error: it returns the zero value of T.
func LoadJSONFile[T any](path string) (T, error) {
	var out T

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}

		return out, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("parse %s: %w", path, err)
	}

	return out, nil
}

// SaveJSONFile encodes v as indented JSON and writes it to path.
func SaveJSONFile[T any](path string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
