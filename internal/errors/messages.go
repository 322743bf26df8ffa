package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the release-notes CLI.
// These templates ensure consistent, actionable error messages.

// ReleaseNotFound creates an error for a version without a published release.
func ReleaseNotFound(err error, tag, org, repo string, authenticated bool) *CLIError {
	remediation := []string{
		fmt.Sprintf("Check that %s exists: https://github.com/%s/%s/releases", tag, org, repo),
		"Pass the version without the leading 'v' (e.g., 4.0.0)",
	}
	if !authenticated {
		remediation = append(remediation, "Draft releases are only visible with a token: export GITHUB_TOKEN=<token>")
	}
	return &CLIError{
		Category:    NotFound,
		Message:     err.Error(),
		Remediation: remediation,
		Cause:       err,
	}
}

// GitHubRequestFailed creates an error when the GitHub API cannot be queried.
func GitHubRequestFailed(err error, authenticated bool) *CLIError {
	remediation := []string{"Check your network connection and the configured github.api_url"}
	msg := strings.ToLower(err.Error())
	switch {
	case !authenticated && strings.Contains(msg, "rate limit"):
		remediation = append([]string{"Unauthenticated requests are rate limited: export GITHUB_TOKEN=<token>"}, remediation...)
	case strings.Contains(msg, "401") || strings.Contains(msg, "bad credentials"):
		remediation = append([]string{"GITHUB_TOKEN was rejected; create a new token with read access to the repository"}, remediation...)
	}
	return WrapWithMessage(err, Runtime, "failed to fetch release", remediation...)
}

// MalformedReleaseBody creates an error for a release body with unparseable entries.
func MalformedReleaseBody(err error) *CLIError {
	return &CLIError{
		Category: Input,
		Message:  err.Error(),
		Remediation: []string{
			"Each change must read: * <title> by @<author> in <pull request URL>",
			"Edit the release body on GitHub, or fix it locally and run 'release-notes parse <file>'",
			"Inspect the detected sections with: release-notes sections <file>",
		},
		Cause: err,
	}
}

// EmptyDependencyBucket creates an error when a dependency section lacks Go or Docker updates.
func EmptyDependencyBucket(err error) *CLIError {
	return &CLIError{
		Category: Input,
		Message:  err.Error(),
		Remediation: []string{
			"Dependency entries are grouped by title: entries mentioning go or docker",
			"Check the dependency section with: release-notes sections <file>",
		},
		Cause: err,
	}
}

// InvalidFormat creates an error for an unknown output format.
func InvalidFormat(format string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid output format: %s", format),
		"release-notes generate ... --format <markdown|html|yaml|json>",
		"Valid formats: markdown, html, yaml, json",
	)
}

// ConfigFileNotFound creates an error for missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'release-notes config init' to create a default configuration",
		"Or drop --config to use .release-notes.yml from the current directory",
	)
}

// ConfigParseError creates an error for invalid config file format.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check the file for YAML syntax errors",
		"List valid keys with: release-notes config keys",
		"Reset to defaults with: release-notes config init --force",
	)
}

// TemplateError creates an error for a custom template that cannot be used.
func TemplateError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("template %s cannot be used", path),
		"Templates use Go text/template syntax with fields .Version, .ReleaseDate, .HelmChartVersion, .K8sVersions and .Sections",
		"Remove --template to use the built-in template",
	)
}

// FileNotReadable creates an error when an input file cannot be read.
func FileNotReadable(path string, err error) *CLIError {
	return WrapWithMessage(err, Argument,
		fmt.Sprintf("cannot read file: %s", path),
		"Check that the path is correct",
		"Use '-' to read from standard input",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
