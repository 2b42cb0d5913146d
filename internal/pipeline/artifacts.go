package pipeline

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/curecompanion/stager/internal/paths"
)

// Filename of the artifact manifest written after a successful build stage.
const manifestFilename = "manifest.json"

// Media type recorded for build artifacts. The pipeline does not interpret
// artifact contents, so everything is an opaque blob.
const artifactMediaType = "application/octet-stream"

// Records the artifacts a build stage produced.
//
// Each artifact is an OCI content descriptor: media type, canonical digest,
// and size, with the file's path (relative to the output directory) in the
// standard title annotation. Consumers can verify artifact integrity against
// the manifest without re-running the build.
type Manifest struct {
	Artifacts []ocispec.Descriptor `json:"artifacts"`
}

// Writes the artifact manifest for the given output directory.
//
// All regular files under the directory are described, except a previous
// manifest, which is overwritten rather than listed. An empty output
// directory produces a manifest with no artifacts; that is not an error.
func writeManifest(dir string) error {
	artifacts, err := describeArtifacts(dir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(&Manifest{Artifacts: artifacts}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	path := filepath.Join(dir, manifestFilename)
	if err := os.WriteFile(path, data, paths.DefaultFileMode); err != nil {
		return err
	}

	slog.Info("artifact manifest written", "path", path, "artifacts", len(artifacts))
	return nil
}

// Walks the output directory and describes every artifact file.
//
// WalkDir visits entries in lexical order, so the manifest is deterministic
// for a given set of artifacts.
func describeArtifacts(dir string) ([]ocispec.Descriptor, error) {
	var artifacts []ocispec.Descriptor

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == manifestFilename {
			return nil
		}

		desc, err := describeFile(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		artifacts = append(artifacts, desc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return artifacts, nil
}

// Produces a content descriptor for a single artifact file.
func describeFile(path, title string) (ocispec.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	dgst, err := digest.Canonical.FromReader(f)
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	return ocispec.Descriptor{
		MediaType: artifactMediaType,
		Digest:    dgst,
		Size:      info.Size(),
		Annotations: map[string]string{
			ocispec.AnnotationTitle: title,
		},
	}, nil
}
