package cli

import (
	"github.com/nginx/release-notes/internal/changelog"
	cliErrors "github.com/nginx/release-notes/internal/errors"
	"github.com/spf13/cobra"
)

var (
	parseParams changelog.Params
	parseRender renderFlags
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Generate release notes from a release body on disk or stdin",
	Long: `Transform a release body that was saved locally, without calling the GitHub
API. The body is read from the file argument, or from stdin when the argument
is omitted or "-".

This is the same transformation 'generate' applies, useful for editing a body
before publishing or for testing templates.`,
	Example: `  # From a file
  release-notes parse body.md --version 4.0.0 --helm-chart-version 2.0.0

  # From the GitHub CLI
  gh release view v4.0.0 --json body -q .body | release-notes parse --version 4.0.0 -f yaml`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return cliErrors.NewArgumentErrorWithUsage("too many arguments", "release-notes parse [file]",
				"Pass a single file, or '-' to read stdin")
		}
		return nil
	},
	RunE: runParse,
}

func init() {
	parseCmd.GroupID = GroupReleaseNotes
	parseCmd.Flags().StringVar(&parseParams.Version, "version", "", "Release version, e.g. 4.0.0")
	parseCmd.Flags().StringVar(&parseParams.HelmChartVersion, "helm-chart-version", "", "Helm chart version")
	parseCmd.Flags().StringVar(&parseParams.K8sVersions, "k8s-versions", "", "Supported Kubernetes versions, e.g. 1.25-1.32")
	parseCmd.Flags().StringVar(&parseParams.ReleaseDate, "release-date", "", "Release date, e.g. \"11 February 2025\"")
	parseRender.register(parseCmd)
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, templatePath, err := parseRender.renderOptions(cmd, cfg)
	if err != nil {
		return err
	}

	body, err := readBody(cmd, args)
	if err != nil {
		return err
	}

	params := parseParams
	doc, err := buildDocument(body, params)
	if err != nil {
		return err
	}

	return parseRender.renderAndWrite(cmd, doc, opts, templatePath)
}
