package serviceutil

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// ExitInterrupted is the conventional exit status after a SIGINT.
const ExitInterrupted = 130

// ExitCode maps a fatal error to a process exit status.
func ExitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	return 1
}

// Fatal logs `err` under `message` and exits the process.
func Fatal(message string, err error) {
	if errors.Is(err, context.Canceled) {
		slog.Warn("interrupted", "during", message)
	} else {
		slog.Error(message, "err", err.Error())
	}
	os.Exit(ExitCode(err))
}
