// Package main provides the cssguide CLI for checking and formatting
// stylesheets.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// errViolations signals that the run found problems. It is reported through
// the exit code only; the details were already printed.
var errViolations = errors.New("violations found")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errViolations) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

// setupLogger installs a text logger on stderr. Verbose lowers the level to
// debug; quiet raises it to errors only.
func setupLogger(verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
