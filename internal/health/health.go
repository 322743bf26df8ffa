// Package health runs the checks behind 'release-notes doctor'. Each check
// reports whether one part of the setup is usable: the configuration, the
// template, the GitHub token, the git remote and the GitHub API.
package health

import (
	"context"
	"fmt"

	"github.com/nginx/release-notes/internal/changelog"
	"github.com/nginx/release-notes/internal/config"
	"github.com/nginx/release-notes/internal/git"
	"github.com/nginx/release-notes/internal/github"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks only warn; a failed optional check does not fail the report.
	Optional bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// RepositoryFetcher is the GitHub call the API check needs.
type RepositoryFetcher interface {
	GetRepository(ctx context.Context, org, repo string) (*github.Repository, error)
}

// Options are the inputs of RunHealthChecks.
type Options struct {
	Config *config.Configuration
	// RepoPath is where the git remote is looked up ("" for the current directory).
	RepoPath string
	GitHub   RepositoryFetcher
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(ctx context.Context, opts Options) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 5),
		Passed: true,
	}

	report.add(CheckConfiguration(opts.Config))
	report.add(CheckTemplate(opts.Config.Template))
	report.add(CheckToken(opts.Config.GitHub.Token))
	report.add(CheckGitRemote(opts.RepoPath))
	report.add(CheckGitHubAPI(ctx, opts.GitHub, opts.Config.GitHub.Org, opts.Config.GitHub.Repo))

	return report
}

func (r *HealthReport) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed && !check.Optional {
		r.Passed = false
	}
}

// CheckConfiguration summarizes the effective repository and output format.
func CheckConfiguration(cfg *config.Configuration) CheckResult {
	return CheckResult{
		Name:    "Configuration",
		Passed:  true,
		Message: fmt.Sprintf("%s/%s via %s, format %s", cfg.GitHub.Org, cfg.GitHub.Repo, cfg.GitHub.APIURL, cfg.Format),
	}
}

// CheckTemplate verifies that a configured template can be read.
func CheckTemplate(path string) CheckResult {
	if path == "" {
		return CheckResult{Name: "Template", Passed: true, Message: "built-in template"}
	}
	if _, err := changelog.LoadTemplate(path); err != nil {
		return CheckResult{Name: "Template", Passed: false, Message: err.Error()}
	}
	return CheckResult{Name: "Template", Passed: true, Message: path}
}

// CheckToken reports whether a GitHub token is configured.
func CheckToken(token string) CheckResult {
	if token == "" {
		return CheckResult{
			Name:     "GitHub token",
			Passed:   false,
			Optional: true,
			Message:  "not set; requests are rate limited and draft releases are invisible",
		}
	}
	return CheckResult{Name: "GitHub token", Passed: true, Message: "set", Optional: true}
}

// CheckGitRemote reports whether org and repo can be inferred from the
// "origin" remote.
func CheckGitRemote(repoPath string) CheckResult {
	if !git.IsGitRepository(repoPath) {
		return CheckResult{Name: "Git remote", Passed: false, Optional: true, Message: "not inside a git repository"}
	}

	org, repo, err := git.RemoteRepository(repoPath, git.DefaultRemote)
	if err != nil {
		return CheckResult{Name: "Git remote", Passed: false, Optional: true, Message: err.Error()}
	}
	return CheckResult{
		Name:     "Git remote",
		Passed:   true,
		Optional: true,
		Message:  fmt.Sprintf("%s points at %s/%s", git.DefaultRemote, org, repo),
	}
}

// CheckGitHubAPI verifies that the repository is visible through the API.
func CheckGitHubAPI(ctx context.Context, client RepositoryFetcher, org, repo string) CheckResult {
	info, err := client.GetRepository(ctx, org, repo)
	if err != nil {
		return CheckResult{Name: "GitHub API", Passed: false, Message: err.Error()}
	}

	msg := fmt.Sprintf("%s is reachable", info.FullName)
	if info.RateLimitRemaining >= 0 {
		msg += fmt.Sprintf(" (%d requests remaining)", info.RateLimitRemaining)
	}
	return CheckResult{Name: "GitHub API", Passed: true, Message: msg}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		switch {
		case check.Passed:
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		case check.Optional:
			output += fmt.Sprintf("○ %s: %s\n", check.Name, check.Message)
		default:
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}
