package cli

import (
	cliErrors "github.com/nginx/release-notes/internal/errors"
)

// Exit codes for the release-notes CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (network, I/O, rendering)
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates invalid or unreadable configuration
	ExitConfigError = 4

	// ExitReleaseNotFound indicates no release carries the requested tag
	ExitReleaseNotFound = 6

	// ExitMalformedBody indicates the release body could not be transformed
	ExitMalformedBody = 7
)

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	cliErr := cliErrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}

	switch cliErr.Category {
	case cliErrors.Argument:
		return ExitInvalidArguments
	case cliErrors.Configuration:
		return ExitConfigError
	case cliErrors.NotFound:
		return ExitReleaseNotFound
	case cliErrors.Input:
		return ExitMalformedBody
	default:
		return ExitFailure
	}
}
