package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/curecompanion/stager/internal/engine"
	"github.com/curecompanion/stager/internal/paths"
)

// The container engine operations the pipeline depends on.
//
// Satisfied by [*engine.Engine]; tests substitute a recording fake.
type Engine interface {
	BuildImage(ctx context.Context, opts engine.BuildOptions) (int, error)
	RunStage(ctx context.Context, opts engine.RunOptions) (int, error)
}

// Controls a pipeline run.
type Options struct {
	Stage          StageName // Stage to execute.
	ImageTag       string    // Tag shared by the build step and the run step.
	Dockerfile     string    // Dockerfile path. Empty uses the engine default.
	Context        string    // Build context directory.
	Output         string    // Host directory receiving build artifacts (build stage).
	OutputMount    string    // Container path the output directory is mounted at.
	UserID         int       // Invoking user's numeric id, exported as USERID to the build stage.
	LintEntrypoint string    // Entrypoint override for the lint stage.
	LintArgs       []string  // Arguments passed to the linter.
	DryRun         bool      // When set, the host filesystem is left untouched.
}

// Reports a pipeline step that completed with a non-zero exit status.
//
// The code is the external process's own exit status and becomes the tool's
// exit code unmodified.
type ExitError struct {
	Stage StageName // Stage that was executing.
	Step  string    // "build" or "run".
	Code  int       // Exit status of the external process.

	err error // Sentinel for errors.Is classification.
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("stage %s: %s step exited with code %d", e.Stage, e.Step, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.err
}

// Executes a pipeline stage against the container engine.
//
// The stage is resolved to an immutable [StageSpec], the image is built,
// and the stage container is run, strictly in that order. A failed image
// build is fatal: the run step is never attempted and the build's exit
// status is surfaced unmodified. After a successful build stage, the files
// under the output directory are recorded in an artifact manifest. A dry
// run leaves both the output directory and the manifest untouched.
func Run(ctx context.Context, eng Engine, opts Options) error {
	spec, err := resolveStage(opts)
	if err != nil {
		return err
	}

	slog.Info("executing stage", "stage", spec.Name, "image", spec.ImageTag)

	if spec.Name == StageBuild && !opts.DryRun {
		if err := os.MkdirAll(opts.Output, paths.DefaultDirMode); err != nil {
			return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
		}
	}

	code, err := eng.BuildImage(ctx, engine.BuildOptions{
		Tag:        spec.ImageTag,
		Dockerfile: opts.Dockerfile,
		Context:    opts.Context,
	})
	if err != nil {
		return fmt.Errorf("%w: stage %s: %w", ErrBuild, spec.Name, err)
	}
	if code != 0 {
		return &ExitError{Stage: spec.Name, Step: "build", Code: code, err: ErrBuild}
	}

	code, err = eng.RunStage(ctx, engine.RunOptions{
		Tag:        spec.ImageTag,
		Entrypoint: spec.Entrypoint,
		Mounts:     spec.Mounts,
		Env:        spec.Env,
		Args:       spec.Args,
	})
	if err != nil {
		return fmt.Errorf("%w: stage %s: %w", ErrRun, spec.Name, err)
	}
	if code != 0 {
		return &ExitError{Stage: spec.Name, Step: "run", Code: code, err: ErrRun}
	}

	if spec.Name == StageBuild && !opts.DryRun {
		if err := writeManifest(opts.Output); err != nil {
			return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
		}
	}

	slog.Info("stage completed", "stage", spec.Name)
	return nil
}
