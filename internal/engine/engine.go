package engine

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/executor"
)

// Drives the external container engine binary.
//
// The engine is an opaque collaborator: commands are composed, executed
// synchronously, and judged solely by their exit status. Output streams
// pass through to the invoking terminal untouched.
type Engine struct {
	binary string // Engine binary name or path (e.g., "docker", "podman").
	dryRun bool   // When set, commands are printed instead of executed.
}

// Binds a host directory to a path inside the container.
type Mount struct {
	Host      string // Host directory, absolute.
	Container string // Mount point inside the container.
}

// Controls the image-build step.
type BuildOptions struct {
	Tag        string // Tag applied to the built image.
	Dockerfile string // Dockerfile path. Empty uses the engine's default lookup.
	Context    string // Build context directory.
}

// Controls a single container run.
type RunOptions struct {
	Tag        string            // Image tag to run. Must match the tag just built.
	Entrypoint string            // Entrypoint override. Empty keeps the image default.
	Mounts     []Mount           // Volume bindings, in order.
	Env        map[string]string // Environment variables for the container.
	Args       []string          // Arguments passed after the image reference.
}

// Creates an engine driver for the given binary.
//
// With dryRun set, every invocation is echoed to standard error in shell
// trace form ("+ docker ...") and reported as successful.
func New(binary string, dryRun bool) *Engine {
	return &Engine{binary: binary, dryRun: dryRun}
}

// Builds an image from a Dockerfile context.
//
// Returns the engine's exit code. A non-zero exit code is not treated as an
// error; the caller decides.
func (e *Engine) BuildImage(ctx context.Context, opts BuildOptions) (int, error) {
	return e.invoke(ctx, buildArgs(opts))
}

// Runs a container from a previously built image.
//
// The container is removed after it exits. Returns the engine's exit code,
// which for a completed run is the containerized process's own exit code.
func (e *Engine) RunStage(ctx context.Context, opts RunOptions) (int, error) {
	return e.invoke(ctx, runArgs(opts))
}

// Composes the argument list for the image-build step.
func buildArgs(opts BuildOptions) []string {
	args := []string{"build", "-t", opts.Tag}
	if opts.Dockerfile != "" {
		args = append(args, "-f", opts.Dockerfile)
	}

	buildCtx := opts.Context
	if buildCtx == "" {
		buildCtx = "."
	}

	return append(args, buildCtx)
}

// Composes the argument list for a container run.
//
// Environment variables are emitted in sorted key order so the composed
// command line is deterministic.
func runArgs(opts RunOptions) []string {
	args := []string{"run", "--rm"}

	for _, m := range opts.Mounts {
		args = append(args, "-v", m.Host+":"+m.Container)
	}

	for _, k := range slices.Sorted(maps.Keys(opts.Env)) {
		args = append(args, "-e", k+"="+opts.Env[k])
	}

	if opts.Entrypoint != "" {
		args = append(args, "--entrypoint", opts.Entrypoint)
	}

	args = append(args, opts.Tag)
	return append(args, opts.Args...)
}

// Executes the engine binary with the given arguments.
//
// The invocation is logged before it runs. Stdout and stderr stream to the
// terminal; nothing is captured or interpreted. If the engine process runs
// to completion its exit code is returned with a nil error. An error is
// returned only when the process cannot be executed at all, or when the
// context is cancelled before completion.
func (e *Engine) invoke(ctx context.Context, args []string) (int, error) {
	if e.dryRun {
		fmt.Fprintln(os.Stderr, "+ "+e.binary+" "+strings.Join(args, " "))
		return 0, nil
	}

	slog.Info("invoking engine", "program", e.binary, "args", args)

	result, err := executor.New(e.binary, args...).Execute(ctx, executor.ConsoleOnly())
	if err != nil {
		if result != nil && result.ExitCode > 0 {
			return result.ExitCode, nil
		}
		if ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %w", ErrEngine, ctx.Err())
		}
		return 0, fmt.Errorf("%w: %w", ErrEngine, err)
	}

	return result.ExitCode, nil
}
