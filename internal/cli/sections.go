package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/nginx/release-notes/internal/changelog"
	cliErrors "github.com/nginx/release-notes/internal/errors"
	"github.com/nginx/release-notes/internal/github"
	"github.com/nginx/release-notes/internal/output"
	"github.com/spf13/cobra"
)

var (
	sectionsJSON    bool
	sectionsRelease string
	sectionsWidth   int
	sectionsRepo    repoFlags
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [file]",
	Short: "Show how a release body is split into sections",
	Long: `Show the "### " sections found in a release body and the bullets under each,
before any filtering or rewriting. Sections that are dropped from the release
notes are marked (skipped); the dependency section is marked (dependencies).

The body is read from the file argument, stdin, or with --release from the
GitHub release of that version.`,
	Example: `  # Inspect a saved body
  release-notes sections body.md

  # Inspect a published release as JSON
  release-notes sections --release 4.0.0 --json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return cliErrors.NewArgumentErrorWithUsage("too many arguments", "release-notes sections [file]")
		}
		if len(args) == 1 && sectionsRelease != "" {
			return cliErrors.NewArgumentError("a file argument and --release are mutually exclusive",
				"Pass either a file or --release <version>")
		}
		return nil
	},
	RunE: runSections,
}

func init() {
	sectionsCmd.GroupID = GroupInternal
	sectionsCmd.Flags().BoolVar(&sectionsJSON, "json", false, "Print sections as a JSON object")
	sectionsCmd.Flags().StringVar(&sectionsRelease, "release", "", "Read the body of this release version from GitHub")
	sectionsCmd.Flags().IntVar(&sectionsWidth, "width", 0, "Wrap bullets at this width (default: terminal width)")
	sectionsRepo.register(sectionsCmd)
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	body, err := sectionsBody(cmd, args)
	if err != nil {
		return err
	}

	sections := changelog.SplitSections(body)

	if sectionsJSON {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(sections); err != nil {
			return fmt.Errorf("encoding sections: %w", err)
		}
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	width := sectionsWidth
	if width <= 0 {
		width = output.GetTerminalWidth()
	}
	return changelog.FormatSections(sections, cmd.OutOrStdout(), changelog.FormatOptions{
		Plain:    color.NoColor,
		MaxWidth: width,
	})
}

func sectionsBody(cmd *cobra.Command, args []string) (string, error) {
	if sectionsRelease == "" {
		return readBody(cmd, args)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	sectionsRepo.apply(cmd, cfg)

	release, err := fetchRelease(cmd.Context(), cfg, github.TagForVersion(normalizeVersion(sectionsRelease)))
	if err != nil {
		return "", err
	}
	return release.Body, nil
}
