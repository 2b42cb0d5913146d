package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/curecompanion/stager/internal"
)

// Reported when the command line cannot be parsed. The process exits with
// code 2 and no engine invocation is attempted.
var ErrUsage = errors.New("invalid usage")

// Represents the root command for the stager CLI.
var RootCmd struct {
	Quiet   bool   `short:"q" help:"Suppress informational output."`
	Verbose bool   `short:"v" help:"Enable verbose output."`
	Debug   bool   `short:"d" help:"Enable debug output."`
	Config  string `short:"c" help:"Override the configuration file path." placeholder:"PATH"`
	Engine  string `help:"Override the container engine binary." placeholder:"BIN"`
	DryRun  bool   `help:"Print engine commands instead of executing them."`

	Build   BuildCmd   `cmd:"" help:"Build the image and produce artifacts."`
	Lint    LintCmd    `cmd:"" help:"Build the image and run the linter inside it."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
//
// A parse failure (unknown stage, bad flag, missing argument) prints the
// error and a usage line to standard error and returns [ErrUsage]; nothing
// external is invoked in that case.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	parser, err := kong.New(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Build-and-verify pipeline runner.\n\nBuilds the project image with the external container engine, then runs the selected stage inside it."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		return err
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", internal.Name, err)
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <build|lint|version>\n", internal.Name)
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
//
// Flags override the build-time defaults set via linker flags. Verbose mode
// adds source locations to log records.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	verbose := RootCmd.Verbose || internal.IsVerbose()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else if quiet {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose,
	})

	slog.SetDefault(slog.New(handler.WithGroup(internal.Name)))
}
