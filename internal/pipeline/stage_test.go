package pipeline

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveStageBuild(t *testing.T) {
	spec, err := resolveStage(Options{
		Stage:       StageBuild,
		ImageTag:    "alice/widget",
		Output:      "dist",
		OutputMount: "/dist",
		UserID:      1000,
	})
	if err != nil {
		t.Fatalf("resolveStage: %v", err)
	}

	if spec.Name != StageBuild {
		t.Fatalf("name = %q, want build", spec.Name)
	}
	if spec.ImageTag != "alice/widget" {
		t.Fatalf("tag = %q, want alice/widget", spec.ImageTag)
	}
	if spec.Entrypoint != "" {
		t.Fatalf("entrypoint = %q, want empty", spec.Entrypoint)
	}

	if len(spec.Mounts) != 1 {
		t.Fatalf("len(mounts) = %d, want 1", len(spec.Mounts))
	}
	if !filepath.IsAbs(spec.Mounts[0].Host) {
		t.Fatalf("mount host %q is not absolute", spec.Mounts[0].Host)
	}
	if filepath.Base(spec.Mounts[0].Host) != "dist" {
		t.Fatalf("mount host = %q, want .../dist", spec.Mounts[0].Host)
	}
	if spec.Mounts[0].Container != "/dist" {
		t.Fatalf("mount container = %q, want /dist", spec.Mounts[0].Container)
	}

	if spec.Env["USERID"] != "1000" {
		t.Fatalf("env = %v, want USERID=1000", spec.Env)
	}
}

func TestResolveStageLint(t *testing.T) {
	spec, err := resolveStage(Options{
		Stage:          StageLint,
		ImageTag:       "alice/widget",
		LintEntrypoint: "pylint",
		LintArgs:       []string{"widget"},
	})
	if err != nil {
		t.Fatalf("resolveStage: %v", err)
	}

	if spec.Name != StageLint {
		t.Fatalf("name = %q, want lint", spec.Name)
	}
	if len(spec.Mounts) != 0 {
		t.Fatalf("mounts = %v, want none", spec.Mounts)
	}
	if len(spec.Env) != 0 {
		t.Fatalf("env = %v, want none", spec.Env)
	}
	if spec.Entrypoint != "pylint" {
		t.Fatalf("entrypoint = %q, want pylint", spec.Entrypoint)
	}
	if len(spec.Args) != 1 || spec.Args[0] != "widget" {
		t.Fatalf("args = %v, want [widget]", spec.Args)
	}
}

func TestResolveStageUnknown(t *testing.T) {
	for _, stage := range []StageName{"", "deploy", "Build", "BUILD", "lint "} {
		if _, err := resolveStage(Options{Stage: stage}); !errors.Is(err, ErrUnknownStage) {
			t.Fatalf("stage %q: err = %v, want ErrUnknownStage", stage, err)
		}
	}
}
