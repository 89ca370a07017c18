package main

import "os"

// Exit codes for different error types.
// These enable build scripts to distinguish between failure modes.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0

	// ExitGeneral indicates a general error
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments or usage error
	ExitUsage = 2

	// ExitNotFound indicates a required dependency is absent
	ExitNotFound = 3

	// ExitToolMissing indicates the metadata tool is not installed
	ExitToolMissing = 4

	// ExitInvalidConfig indicates malformed dependency options
	ExitInvalidConfig = 5

	// ExitToolingFault indicates a probe failed unexpectedly
	ExitToolingFault = 6
)

// exitWithCode exits with the specified exit code
func exitWithCode(code int) {
	os.Exit(code)
}
