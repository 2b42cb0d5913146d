// Package engine invokes the external container engine.
//
// An [Engine] wraps a container engine binary such as docker or podman.
// It composes the command lines for the two operations the pipeline needs
// (building an image from a Dockerfile context, and running a container
// from the resulting tag) and executes them synchronously. The engine is
// treated as opaque: only its exit-status contract is relied on, and its
// output streams pass through to the terminal unmodified.
//
// Example usage:
//
//	eng := engine.New("docker", false)
//
//	code, err := eng.BuildImage(ctx, engine.BuildOptions{
//	    Tag:     "alice/widget",
//	    Context: ".",
//	})
//	if err != nil {
//	    return err
//	}
//	if code != 0 {
//	    return fmt.Errorf("build exited with code %d", code)
//	}
package engine
