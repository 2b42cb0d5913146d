package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/curecompanion/stager/internal/paths"
)

const (

	// Engine binary used when none is configured.
	defaultEngine = "docker"

	// Build context directory used when none is configured.
	defaultContext = "."

	// Host directory receiving build artifacts.
	defaultOutput = "dist"

	// Mount point for the output directory inside the build container.
	defaultOutputMount = "/dist"

	// Entrypoint override for the lint stage.
	defaultLintEntrypoint = "pylint"

	// Upper bound on a single stage, matching the longest builds seen in
	// practice. Zero disables the timeout.
	defaultTimeout = 10 * time.Minute
)

var ErrConfig = errors.New("invalid configuration")

// The user identity the tool runs as.
//
// Resolved once at startup and carried through the run, rather than read
// from the ambient environment at each use site.
type Identity struct {
	User string // Login name, used in the image tag.
	UID  int    // Numeric user id, exported to the build stage as USERID.
}

// Settings for the lint stage.
type LintConfig struct {
	Entrypoint string   `yaml:"entrypoint"` // Linter binary replacing the image entrypoint.
	Target     []string `yaml:"target"`     // Arguments passed to the linter (e.g., the module name).
}

// Wraps [time.Duration] with YAML support for strings like "10m" or "1h30m".
type Duration time.Duration

// Decodes a YAML scalar into a duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: timeout %q: %w", ErrConfig, raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// Holds the resolved run configuration.
//
// A zero value is not usable; construct via [Load], which applies the file,
// the defaults, and the invoking user's identity in that order.
type Config struct {
	Project     string     `yaml:"project"`      // Project name. Defaults to the working directory's base name.
	Tag         string     `yaml:"tag"`          // Image tag. Defaults to "<user>/<project>".
	Engine      string     `yaml:"engine"`       // Container engine binary.
	Dockerfile  string     `yaml:"dockerfile"`   // Dockerfile path. Empty uses the engine's default.
	Context     string     `yaml:"context"`      // Build context directory.
	Output      string     `yaml:"output"`       // Host directory receiving build artifacts.
	OutputMount string     `yaml:"output_mount"` // Container path the output directory is mounted at.
	Lint        LintConfig `yaml:"lint"`         // Lint stage settings.
	Timeout     Duration   `yaml:"timeout"`      // Per-stage deadline. Zero disables it.

	Identity Identity `yaml:"-"` // Invoking user, resolved at load time.
}

// Loads the configuration.
//
// When explicit is non-empty it names the file to read and must exist.
// Otherwise the project-level stager.yaml in the working directory is
// preferred over the user-level XDG file, and having neither is fine:
// every field has a usable default.
func Load(explicit string) (*Config, error) {
	cfg := &Config{Timeout: Duration(defaultTimeout)}

	path, err := locate(explicit)
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
		}
		slog.Debug("configuration loaded", "path", path)
	}

	ident, err := currentIdentity()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if err := cfg.finalize(ident, cwd); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Returns the path of the configuration file to read, or empty when no file
// is present.
func locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %w", ErrConfig, err)
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, candidate := range []string{paths.ProjectConfigFile(cwd), paths.ConfigFile()} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", nil
}

// Fills unset fields with defaults and derives the image tag.
//
// The tag is computed exactly once here; both the image-build step and the
// stage-run step read the same resolved value, so the executed container
// always matches the just-built image.
func (c *Config) finalize(ident Identity, cwd string) error {
	c.Identity = ident

	if c.Project == "" {
		c.Project = filepath.Base(cwd)
	}
	if c.Project == "" || c.Project == string(filepath.Separator) || c.Project == "." {
		return fmt.Errorf("%w: cannot derive a project name from %q", ErrConfig, cwd)
	}

	if c.Engine == "" {
		c.Engine = defaultEngine
	}
	if c.Context == "" {
		c.Context = defaultContext
	}
	if c.Output == "" {
		c.Output = defaultOutput
	}
	if c.OutputMount == "" {
		c.OutputMount = defaultOutputMount
	}
	if c.Lint.Entrypoint == "" {
		c.Lint.Entrypoint = defaultLintEntrypoint
	}
	if len(c.Lint.Target) == 0 {
		c.Lint.Target = []string{c.Project}
	}

	if c.Tag == "" {
		c.Tag = ident.User + "/" + c.Project
	}

	// OCI references reject uppercase characters, and login names don't.
	c.Tag = strings.ToLower(strings.TrimSpace(c.Tag))
	if c.Tag == "" || strings.HasPrefix(c.Tag, "/") || strings.HasSuffix(c.Tag, "/") {
		return fmt.Errorf("%w: image tag %q", ErrConfig, c.Tag)
	}

	return nil
}

// Returns the per-stage deadline.
func (c *Config) StageTimeout() time.Duration {
	return time.Duration(c.Timeout)
}

// Resolves the invoking user's name and numeric id.
//
// Falls back to the USER environment variable and the process uid when the
// user database is unavailable (static binaries without cgo, minimal
// containers).
func currentIdentity() (Identity, error) {
	if u, err := user.Current(); err == nil {
		if uid, err := strconv.Atoi(u.Uid); err == nil {
			return Identity{User: u.Username, UID: uid}, nil
		}
		return Identity{User: u.Username, UID: os.Getuid()}, nil
	}

	name := os.Getenv("USER")
	if name == "" {
		return Identity{}, errors.New("cannot determine the invoking user")
	}

	return Identity{User: name, UID: os.Getuid()}, nil
}
