package cli

import (
	"fmt"

	cliErrors "github.com/nginx/release-notes/internal/errors"
	"github.com/nginx/release-notes/internal/health"
	"github.com/spf13/cobra"
)

var doctorRepo repoFlags

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, credentials and GitHub access",
	Long: `Run health checks for the release-notes setup:

  - Configuration: the repository, API URL and format in effect
  - Template: the configured template can be read
  - GitHub token: whether GITHUB_TOKEN is set (warning only)
  - Git remote: whether org/repo can be inferred from origin (warning only)
  - GitHub API: the repository is visible through the API`,
	Example: `  # Check the current setup
  release-notes doctor

  # Check access to another repository
  release-notes doctor --org nginx --repo nginx-gateway-fabric`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.GroupID = GroupInternal
	doctorRepo.register(doctorCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	doctorRepo.apply(cmd, cfg)

	report := health.RunHealthChecks(cmd.Context(), health.Options{
		Config: cfg,
		GitHub: newGitHubClient(cfg),
	})
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

	if !report.Passed {
		return cliErrors.NewRuntimeError("health checks failed",
			"Fix the checks marked ✗ above",
			"Run with --verbose for request details")
	}
	return nil
}
