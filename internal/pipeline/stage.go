package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/curecompanion/stager/internal/engine"
)

// Identifies a pipeline stage.
type StageName string

const (
	StageBuild StageName = "build"
	StageLint  StageName = "lint"
)

// Describes one resolved pipeline stage.
//
// A StageSpec is constructed once from the options, is not modified
// afterwards, and owns no resources.
type StageSpec struct {
	Name       StageName         // Stage identifier.
	ImageTag   string            // Tag used for both the build step and the run step.
	Entrypoint string            // Entrypoint override. Empty keeps the image default.
	Mounts     []engine.Mount    // Volume bindings, in order.
	Env        map[string]string // Environment passed to the container.
	Args       []string          // Arguments after the entrypoint.
}

// Resolves the options into a [StageSpec].
//
// The build stage mounts the output directory (as an absolute host path)
// and exports the invoking user's id so artifacts end up owned by the
// invoker rather than root. The lint stage overrides the entrypoint with
// the linter and passes no mounts and no environment.
func resolveStage(opts Options) (*StageSpec, error) {
	switch opts.Stage {
	case StageBuild:
		host, err := filepath.Abs(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
		}
		return &StageSpec{
			Name:     StageBuild,
			ImageTag: opts.ImageTag,
			Mounts:   []engine.Mount{{Host: host, Container: opts.OutputMount}},
			Env:      map[string]string{"USERID": strconv.Itoa(opts.UserID)},
		}, nil

	case StageLint:
		return &StageSpec{
			Name:       StageLint,
			ImageTag:   opts.ImageTag,
			Entrypoint: opts.LintEntrypoint,
			Args:       opts.LintArgs,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, opts.Stage)
	}
}
