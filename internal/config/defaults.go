package config

import "time"

const (
	DefaultOrg     = "nginx"
	DefaultRepo    = "kubernetes-ingress"
	DefaultAPIURL  = "https://api.github.com"
	DefaultPerPage = 100
	DefaultTimeout = 30 * time.Second
	DefaultFormat  = "markdown"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# release-notes configuration
# Environment variables override this file: GITHUB_TOKEN, GITHUB_ORG,
# GITHUB_REPO and RELEASE_NOTES_* (e.g. RELEASE_NOTES_GITHUB__PER_PAGE).

github:
  org: nginx                          # Organization owning the repository
  repo: kubernetes-ingress            # Repository publishing the releases
  # token: ""                         # Prefer GITHUB_TOKEN over storing it here
  api_url: https://api.github.com     # GitHub Enterprise: https://host/api/v3
  per_page: 100                       # Releases fetched per page (1-100)
  timeout: 30s                        # Per-request timeout

format: markdown                      # Output: markdown | html | yaml | json
template: ""                          # Custom text/template file (empty = built-in)
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"github.org":      DefaultOrg,
		"github.repo":     DefaultRepo,
		"github.token":    "",
		"github.api_url":  DefaultAPIURL,
		"github.per_page": DefaultPerPage,
		// Stored as a string so it decodes the same way as file and env values.
		"github.timeout": DefaultTimeout.String(),
		"format":         DefaultFormat,
		"template":       "",
	}
}
