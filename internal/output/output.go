// Package output provides terminal output utilities for claudepack.
//
// This package includes:
//   - Status markers (✓/✗/⚠) printed per pipeline stage
//   - A byte-count progress bar for the installer download
//   - Spinners for long-running external tool invocations
//   - Table rendering for the build history
//
// All output uses ASCII characters plus ANSI color codes; colors are
// suppressed when stdout is not a TTY or NO_COLOR is set.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color codes for status markers
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// writerIsTTY returns true if the given writer exposes an Fd() method
// (e.g. *os.File) and that fd is a terminal. Falls back to false for
// plain io.Writer values such as *bytes.Buffer.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

func colored(color, s string) string {
	if !IsColorEnabled() {
		return s
	}
	return color + s + colorReset
}

// Step prints the status line emitted when a pipeline stage starts.
func Step(msg string) {
	fmt.Printf("%s %s...\n", colored(colorBlue, "→"), msg)
}

// OK prints a success marker for a completed stage.
func OK(msg string) {
	fmt.Printf("%s %s\n", colored(colorGreen, "✓"), msg)
}

// Fail prints a failure marker. The pipeline aborts after the stage that
// printed it.
func Fail(msg string) {
	fmt.Printf("%s %s\n", colored(colorRed, "✗"), msg)
}

// Warn prints a non-fatal warning marker (e.g. a missing icon resolution).
func Warn(msg string) {
	fmt.Printf("%s %s\n", colored(colorYellow, "⚠"), msg)
}
