package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()

	content := []byte("artifact payload")
	if err := os.WriteFile(filepath.Join(dir, "widget.tar.gz"), content, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docs", "index.html"), []byte("<html/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := writeManifest(dir); err != nil {
		t.Fatalf("writeManifest: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}

	if len(m.Artifacts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(m.Artifacts))
	}

	// WalkDir is lexical: docs/index.html sorts before widget.tar.gz.
	first := m.Artifacts[0]
	if first.Annotations[ocispec.AnnotationTitle] != "docs/index.html" {
		t.Fatalf("first title = %q, want docs/index.html", first.Annotations[ocispec.AnnotationTitle])
	}

	second := m.Artifacts[1]
	if second.Annotations[ocispec.AnnotationTitle] != "widget.tar.gz" {
		t.Fatalf("second title = %q, want widget.tar.gz", second.Annotations[ocispec.AnnotationTitle])
	}
	if second.Digest != digest.FromBytes(content) {
		t.Fatalf("digest = %s, want %s", second.Digest, digest.FromBytes(content))
	}
	if second.Size != int64(len(content)) {
		t.Fatalf("size = %d, want %d", second.Size, len(content))
	}
	if second.MediaType != artifactMediaType {
		t.Fatalf("mediaType = %q, want %q", second.MediaType, artifactMediaType)
	}
}

func TestWriteManifestEmptyDir(t *testing.T) {
	dir := t.TempDir()

	if err := writeManifest(dir); err != nil {
		t.Fatalf("writeManifest: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if len(m.Artifacts) != 0 {
		t.Fatalf("artifacts = %v, want none", m.Artifacts)
	}
}

func TestWriteManifestExcludesItself(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.bin"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Write twice: the second run must overwrite, not describe, the first
	// manifest.
	if err := writeManifest(dir); err != nil {
		t.Fatal(err)
	}
	if err := writeManifest(dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatal(err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if len(m.Artifacts) != 1 {
		t.Fatalf("len(artifacts) = %d, want 1", len(m.Artifacts))
	}
}
