// Package version holds the release-notes version information.
// It has no dependencies and can be safely imported from any package.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// UserAgent is sent with every GitHub API request.
func UserAgent() string {
	return "release-notes/" + Version
}

// ShortCommit returns the first 7 characters of the commit hash.
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// Platform returns the GOOS/GOARCH pair of the running binary.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
