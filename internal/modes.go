package internal

import "strconv"

// Log modes baked into the binary through -ldflags. Command-line flags can
// still raise the level of an individual invocation.
var (
	quietDefault   = parseMode(rawQuiet)
	debugDefault   = parseMode(rawDebug)
	verboseDefault = parseMode(rawVerbose)
)

// Reports whether quiet mode was baked into the binary.
func IsQuiet() bool { return quietDefault }

// Reports whether debug mode was baked into the binary.
func IsDebug() bool { return debugDefault }

// Reports whether verbose logging was baked into the binary.
func IsVerbose() bool { return verboseDefault }

// Treats anything unparsable as off.
func parseMode(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
