// Parses flags and dispatches pipeline stages for the stager CLI.
//
// The tool accepts the following flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//	-c, --config    Configuration file path.
//	    --engine    Container engine binary.
//	    --dry-run   Print engine commands instead of executing them.
//
// Flags override build-time defaults set via linker flags. After parsing,
// the global logger is reconfigured to reflect the final level before the
// selected stage runs. An unparseable command line exits with code 2
// without touching the engine.
package cli
