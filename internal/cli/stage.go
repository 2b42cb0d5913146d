package cli

import (
	"context"

	"github.com/curecompanion/stager/internal/config"
	"github.com/curecompanion/stager/internal/engine"
	"github.com/curecompanion/stager/internal/pipeline"
)

// Represents the 'stager build' command.
type BuildCmd struct{}

// Executes the build stage.
//
// Builds the project image and runs it with the output directory mounted,
// producing build artifacts on the host.
func (c *BuildCmd) Run(ctx context.Context) error {
	return runStage(ctx, pipeline.StageBuild)
}

// Represents the 'stager lint' command.
type LintCmd struct{}

// Executes the lint stage.
//
// Builds the project image and runs the configured linter inside it against
// the lint target.
func (c *LintCmd) Run(ctx context.Context) error {
	return runStage(ctx, pipeline.StageLint)
}

// Loads the configuration, prepares the engine, and executes one stage.
//
// Each invocation is independent: the image is rebuilt for every stage and
// nothing is shared between runs.
func runStage(ctx context.Context, stage pipeline.StageName) error {
	cfg, err := config.Load(RootCmd.Config)
	if err != nil {
		return err
	}

	if RootCmd.Engine != "" {
		cfg.Engine = RootCmd.Engine
	}

	if timeout := cfg.StageTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	eng := engine.New(cfg.Engine, RootCmd.DryRun)

	return pipeline.Run(ctx, eng, pipeline.Options{
		Stage:          stage,
		ImageTag:       cfg.Tag,
		Dockerfile:     cfg.Dockerfile,
		Context:        cfg.Context,
		Output:         cfg.Output,
		OutputMount:    cfg.OutputMount,
		UserID:         cfg.Identity.UID,
		LintEntrypoint: cfg.Lint.Entrypoint,
		LintArgs:       cfg.Lint.Target,
		DryRun:         RootCmd.DryRun,
	})
}
