package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nginx/release-notes/internal/changelog"
	"github.com/nginx/release-notes/internal/config"
	cliErrors "github.com/nginx/release-notes/internal/errors"
	"github.com/nginx/release-notes/internal/github"
	"github.com/nginx/release-notes/internal/progress"
	"github.com/nginx/release-notes/internal/version"
	"github.com/spf13/cobra"
)

const generateUsage = "release-notes generate <version> <helm-chart-version> <k8s-versions> <release-date>"

// repoFlags select the repository releases are read from.
type repoFlags struct {
	org  string
	repo string
}

func (f *repoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.org, "org", "", "GitHub organization (default from config, git remote, or nginx)")
	cmd.Flags().StringVar(&f.repo, "repo", "", "GitHub repository (default from config, git remote, or kubernetes-ingress)")
}

// apply overrides the configured repository with explicitly set flags.
func (f *repoFlags) apply(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("org") {
		cfg.GitHub.Org = f.org
	}
	if cmd.Flags().Changed("repo") {
		cfg.GitHub.Repo = f.repo
	}
}

var (
	generateRepo   repoFlags
	generateRender renderFlags
)

var generateCmd = &cobra.Command{
	Use:   "generate <version> <helm-chart-version> <k8s-versions> <release-date>",
	Short: "Generate release notes for a published GitHub release",
	Long: `Fetch the GitHub release tagged v<version>, transform its body and render
the release notes.

The release is looked up in the configured repository (nginx/kubernetes-ingress
by default). Set GITHUB_TOKEN to raise the API rate limit and to see draft
releases. The remaining arguments are copied verbatim into the document.`,
	Example: `  # Markdown on stdout
  release-notes generate 4.0.0 2.0.0 1.25-1.32 "11 February 2025"

  # JSON into a file
  release-notes generate 4.0.0 2.0.0 1.25-1.32 "11 February 2025" -f json -o notes.json

  # A different repository and template
  release-notes generate 1.5.0 1.5.0 1.25-1.31 "1 March 2025" \
    --org nginx --repo nginx-gateway-fabric --template notes.md.tmpl`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 4 {
			return cliErrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("expected 4 arguments, got %d", len(args)),
				generateUsage,
				"Quote arguments containing spaces, e.g. the release date",
				`Example: release-notes generate 4.0.0 2.0.0 1.25-1.32 "11 February 2025"`,
			)
		}
		if normalizeVersion(args[0]) == "" {
			return cliErrors.NewArgumentErrorWithUsage("version must not be empty", generateUsage)
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	generateCmd.GroupID = GroupReleaseNotes
	generateRepo.register(generateCmd)
	generateRender.register(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params := changelog.Params{
		Version:          args[0],
		HelmChartVersion: args[1],
		K8sVersions:      args[2],
		ReleaseDate:      args[3],
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	generateRepo.apply(cmd, cfg)

	opts, templatePath, err := generateRender.renderOptions(cmd, cfg)
	if err != nil {
		return err
	}

	release, err := fetchRelease(cmd.Context(), cfg, github.TagForVersion(normalizeVersion(params.Version)))
	if err != nil {
		return err
	}

	doc, err := buildDocument(release.Body, params)
	if err != nil {
		return err
	}

	return generateRender.renderAndWrite(cmd, doc, opts, templatePath)
}

// fetchRelease looks up tag in the configured repository, showing a spinner
// on interactive terminals while the release pages are walked.
func fetchRelease(ctx context.Context, cfg *config.Configuration, tag string) (*github.Release, error) {
	org, repo := cfg.GitHub.Org, cfg.GitHub.Repo
	authenticated := cfg.GitHub.Token != ""
	if !authenticated {
		slog.Debug("no GitHub token configured; requests are unauthenticated")
	}

	client := newGitHubClient(cfg)

	caps := progress.TerminalCapabilities{}
	if !verbose {
		caps = progress.DetectTerminalCapabilities(os.Stderr)
	}
	sp := progress.NewSpinner(os.Stderr, caps, fmt.Sprintf("Fetching %s from %s/%s", tag, org, repo))
	sp.Start()

	release, err := client.FindRelease(ctx, org, repo, tag)
	if err != nil {
		sp.Fail(fmt.Sprintf("Could not fetch %s from %s/%s", tag, org, repo))
		if github.IsReleaseNotFoundError(err) {
			return nil, cliErrors.ReleaseNotFound(err, tag, org, repo, authenticated)
		}
		return nil, cliErrors.GitHubRequestFailed(err, authenticated)
	}

	sp.Success(fmt.Sprintf("Found %s in %s/%s", tag, org, repo))
	slog.Debug("release fetched", "tag", release.TagName, "name", release.Name,
		"draft", release.Draft, "prerelease", release.Prerelease, "url", release.HTMLURL)
	return release, nil
}

func newGitHubClient(cfg *config.Configuration) *github.Client {
	return github.NewClient(github.Options{
		BaseURL:   cfg.GitHub.APIURL,
		Token:     cfg.GitHub.Token,
		PerPage:   cfg.GitHub.PerPage,
		Timeout:   cfg.GitHub.Timeout,
		UserAgent: version.UserAgent(),
	})
}
