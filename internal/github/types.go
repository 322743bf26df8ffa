package github

import "time"

// Release is the subset of the GitHub release object the release notes need.
type Release struct {
	ID          int64     `json:"id"`
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
}

// Repository is the subset of the GitHub repository object used by health checks.
type Repository struct {
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
	HTMLURL       string `json:"html_url"`

	// RateLimitRemaining is read from the X-RateLimit-Remaining header,
	// -1 when the header is absent.
	RateLimitRemaining int `json:"-"`
}

// apiError is the error payload returned by the GitHub REST API.
type apiError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
