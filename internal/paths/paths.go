package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "stager"

	// Filename of the configuration file.
	configFilename = "stager.yaml"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for user-level configuration.
//
//	Linux:   $XDG_CONFIG_HOME/stager or ~/.config/stager
//	macOS:   ~/Library/Application Support/stager
func Config() string {
	return filepath.Join(xdg.ConfigHome, toolName)
}

// Default path to the user-level configuration file.
//
//	Linux:   $XDG_CONFIG_HOME/stager/stager.yaml
//	macOS:   ~/Library/Application Support/stager/stager.yaml
func ConfigFile() string {
	return filepath.Join(Config(), configFilename)
}

// Path to a project-level configuration file in the given directory.
//
// Project configuration takes precedence over the user-level file, so a
// repository can pin its own engine, image, and lint settings.
func ProjectConfigFile(dir string) string {
	return filepath.Join(dir, configFilename)
}
