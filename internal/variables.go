package internal

import (
	"fmt"
	"runtime"
	"strings"
)

// Tool name used for CLI branding, logging groups, and path derivation.
const Name = "stager"

// Placeholder for a build variable the linker did not populate.
const undefined = "(undefined)"

// Populated through -ldflags by the release pipeline. A binary built
// without them reports itself as a local build.
var (
	version   = "" // Release version, e.g. "1.2.3".
	stage     = "" // Git branch the release was cut from.
	gitCommit = "" // Commit hash the release was built at.

	rawQuiet   = "false" // Baked-in quiet default.
	rawDebug   = "false" // Baked-in debug default.
	rawVerbose = "false" // Baked-in verbose default.
)

// Reports whether the binary was built outside the release pipeline,
// meaning at least one of the build variables was left unset.
func IsLocal() bool {
	return buildValue(version) == undefined ||
		buildValue(stage) == undefined ||
		buildValue(gitCommit) == undefined
}

// Renders the build identity for the version subcommand and startup logs.
//
// Release builds produce "<version> <commit> [<arch>]", with a "+<stage>"
// qualifier appended to the version when the release was cut from a branch
// other than main. Local builds produce "(local)".
func VersionString() string {
	if IsLocal() {
		return "(local)"
	}

	v := strings.TrimPrefix(buildValue(version), "v")
	if s := buildValue(stage); s != "main" {
		v += "+" + s
	}

	return fmt.Sprintf("%s %s [%s]", v, buildValue(gitCommit), runtime.GOARCH)
}

// Normalizes a linker-supplied value, mapping the empty string to the
// undefined placeholder.
func buildValue(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return undefined
	}
	return v
}
