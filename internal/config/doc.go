// Package config resolves the run configuration for the pipeline.
//
// Configuration is read from a YAML file: a project-level stager.yaml in
// the working directory takes precedence over the user-level file in the
// XDG config directory, and an explicit --config path overrides both.
// Every field has a default, so running without any file works out of the
// box.
//
// The invoking user's identity (login name and numeric id) is resolved
// once at load time and stored on the [Config]; downstream code never
// consults the ambient environment for it. The image tag is likewise
// derived once, so the build step and the run step always agree on it.
package config
