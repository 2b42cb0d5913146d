// Package pipeline executes build-and-verify stages against a container
// engine.
//
// A stage is a strict two-step sequence: build the image, then run a
// container from the tag that was just built. The same resolved tag is
// used for both steps, so the executed container always matches the
// image the run produced. The build stage mounts a host output directory
// and records the resulting artifacts in a digest manifest; the lint
// stage overrides the image entrypoint with the configured linter.
//
// Engine operations are delegated to the engine package through the
// [Engine] interface. There is no retry and no partial-failure recovery:
// when the build step fails, the run step is never attempted, and the
// failing step's exit status is surfaced as an [ExitError].
//
// Example usage:
//
//	err := pipeline.Run(ctx, eng, pipeline.Options{
//	    Stage:       pipeline.StageBuild,
//	    ImageTag:    "alice/widget",
//	    Context:     ".",
//	    Output:      "dist",
//	    OutputMount: "/dist",
//	    UserID:      1000,
//	})
//	if err != nil {
//	    return err
//	}
package pipeline
