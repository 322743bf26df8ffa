// Package git reads repository metadata used to infer which GitHub
// repository release notes are pulled from. It uses go-git so no git
// binary is required.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote inspected when none is given.
const DefaultRemote = "origin"

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ErrNotGitHubURL is returned for remotes that do not point at a GitHub host.
var ErrNotGitHubURL = errors.New("not a GitHub repository URL")

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsGitRepository checks if path (or the current directory) is within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsGitRepository: %v", result)
	return result
}

// RemoteURL returns the first URL configured for the named remote.
func RemoteURL(path, remoteName string) (string, error) {
	if remoteName == "" {
		remoteName = DefaultRemote
	}

	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("getting remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remoteName)
	}

	logDebug("[git] RemoteURL %s: %s", remoteName, urls[0])
	return urls[0], nil
}

// RemoteRepository returns the GitHub organization and repository the named
// remote points at.
func RemoteRepository(path, remoteName string) (org, repo string, err error) {
	rawURL, err := RemoteURL(path, remoteName)
	if err != nil {
		return "", "", err
	}
	return ParseGitHubURL(rawURL)
}

// ParseGitHubURL extracts organization and repository from a GitHub remote
// URL. Supported forms:
//
//	https://github.com/org/repo(.git)
//	ssh://git@github.com/org/repo(.git)
//	git@github.com:org/repo(.git)
//
// GitHub Enterprise hosts are accepted when their name contains "github".
func ParseGitHubURL(rawURL string) (org, repo string, err error) {
	rawURL = strings.TrimSpace(rawURL)

	var host, path string
	if isSCPLikeURL(rawURL) {
		userHost, p, _ := strings.Cut(rawURL, ":")
		_, host, _ = strings.Cut(userHost, "@")
		path = p
	} else {
		u, perr := url.Parse(rawURL)
		if perr != nil {
			return "", "", fmt.Errorf("parsing remote URL %q: %w", rawURL, perr)
		}
		host = u.Hostname()
		path = u.Path
	}

	if !strings.Contains(strings.ToLower(host), "github") {
		return "", "", fmt.Errorf("%q: %w", rawURL, ErrNotGitHubURL)
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%q: expected <org>/<repo> path: %w", rawURL, ErrNotGitHubURL)
	}

	repo = strings.TrimSuffix(parts[1], ".git")
	if repo == "" {
		return "", "", fmt.Errorf("%q: empty repository name: %w", rawURL, ErrNotGitHubURL)
	}
	return parts[0], repo, nil
}

// isSCPLikeURL reports URLs of the form user@host:path.
func isSCPLikeURL(rawURL string) bool {
	if strings.Contains(rawURL, "://") {
		return false
	}
	at := strings.Index(rawURL, "@")
	colon := strings.Index(rawURL, ":")
	return at > 0 && colon > at
}
