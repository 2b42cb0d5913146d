package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/curecompanion/stager/internal"
	"github.com/curecompanion/stager/internal/cli"
	"github.com/curecompanion/stager/internal/pipeline"
)

// The entry point for the stager CLI.
//
// Initializes logging, displays startup information, and executes the root
// command. Errors are reported to standard error and mapped to the process
// exit code: 2 for invalid usage, the external process's own exit status for
// a failed pipeline step, and 1 for everything else.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("stager is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(exitCode(err))
	}
}

// Maps an execution error to the process exit code.
//
// A pipeline step that ran and failed carries the external process's exit
// status, which is propagated unmodified. Usage errors exit with 2.
func exitCode(err error) int {
	var exit *pipeline.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	if errors.Is(err, cli.ErrUsage) {
		return 2
	}
	return 1
}

// Creates a logger seeded from build-time linker flags.
//
// The logger is reconfigured after flag parsing via cli.Execute.
func logger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})
	return slog.New(handler.WithGroup(internal.Name))
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
