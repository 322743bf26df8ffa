// Package github fetches published releases from the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the public GitHub REST API endpoint.
	DefaultBaseURL = "https://api.github.com"
	// DefaultPerPage is the page size used when listing releases.
	DefaultPerPage = 100
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	repositoryPath = "/repos/{org}/{repo}"
	releasesPath   = "/repos/{org}/{repo}/releases"
)

// ReleaseNotFoundError is returned when no release carries the requested tag.
type ReleaseNotFoundError struct {
	Org  string
	Repo string
	Tag  string
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("release %s not found in %s/%s", e.Tag, e.Org, e.Repo)
}

// IsReleaseNotFoundError returns true if the error is a ReleaseNotFoundError.
func IsReleaseNotFoundError(err error) bool {
	var nf *ReleaseNotFoundError
	return errors.As(err, &nf)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Token     string
	PerPage   int
	Timeout   time.Duration
	UserAgent string
}

// Client lists releases of a repository.
type Client struct {
	http    *resty.Client
	perPage int
}

// NewClient creates a GitHub client. Zero option values fall back to defaults.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.PerPage <= 0 || opts.PerPage > 100 {
		opts.PerPage = DefaultPerPage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "release-notes"
	}

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28").
		SetHeader("User-Agent", opts.UserAgent)
	if opts.Token != "" {
		rc.SetAuthToken(opts.Token)
	}

	return &Client{http: rc, perPage: opts.PerPage}
}

// TagForVersion returns the release tag for a version, e.g. "4.0.0" -> "v4.0.0".
func TagForVersion(version string) string {
	return "v" + version
}

// FindRelease pages through the repository's releases, newest first, and
// returns the one tagged with tag. It returns a ReleaseNotFoundError when the
// listing is exhausted without a match.
func (c *Client) FindRelease(ctx context.Context, org, repo, tag string) (*Release, error) {
	for page := 1; ; page++ {
		releases, err := c.listReleases(ctx, org, repo, page)
		if err != nil {
			return nil, err
		}
		slog.Debug("fetched releases page", "org", org, "repo", repo, "page", page, "count", len(releases))

		for i := range releases {
			if releases[i].TagName == tag {
				slog.Debug("found release", "tag", tag, "id", releases[i].ID, "draft", releases[i].Draft)
				return &releases[i], nil
			}
		}

		if len(releases) < c.perPage {
			return nil, &ReleaseNotFoundError{Org: org, Repo: repo, Tag: tag}
		}
	}
}

// GetRepository fetches the repository metadata. It is the cheapest call
// that proves the API is reachable and the repository visible.
func (c *Client) GetRepository(ctx context.Context, org, repo string) (*Repository, error) {
	var result Repository
	var apiErr apiError

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"org": org, "repo": repo}).
		SetResult(&result).
		SetError(&apiErr).
		Get(repositoryPath)
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s/%s: %w", org, repo, err)
	}
	if resp.IsError() {
		return nil, statusError(fmt.Sprintf("fetching repository %s/%s", org, repo), resp.StatusCode(), apiErr)
	}

	result.RateLimitRemaining = -1
	if remaining, err := strconv.Atoi(resp.Header().Get("X-RateLimit-Remaining")); err == nil {
		result.RateLimitRemaining = remaining
	}
	return &result, nil
}

// listReleases fetches a single page of releases.
func (c *Client) listReleases(ctx context.Context, org, repo string, page int) ([]Release, error) {
	var releases []Release
	var apiErr apiError

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"org": org, "repo": repo}).
		SetQueryParams(map[string]string{
			"per_page": strconv.Itoa(c.perPage),
			"page":     strconv.Itoa(page),
		}).
		SetResult(&releases).
		SetError(&apiErr).
		Get(releasesPath)
	if err != nil {
		return nil, fmt.Errorf("listing releases of %s/%s: %w", org, repo, err)
	}

	if resp.IsError() {
		return nil, statusError(fmt.Sprintf("listing releases of %s/%s", org, repo), resp.StatusCode(), apiErr)
	}

	return releases, nil
}

func statusError(action string, status int, apiErr apiError) error {
	if apiErr.Message != "" {
		return fmt.Errorf("%s: unexpected status code: %d: %s", action, status, apiErr.Message)
	}
	return fmt.Errorf("%s: unexpected status code: %d", action, status)
}
