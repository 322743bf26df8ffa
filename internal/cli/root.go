// Package cli implements the release-notes command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	cliErrors "github.com/nginx/release-notes/internal/errors"
	"github.com/nginx/release-notes/internal/git"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupReleaseNotes = "release-notes"
	GroupConfig       = "config"
	GroupInternal     = "internal"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "release-notes",
	Short: "Generate release notes from a GitHub release",
	Long: `release-notes turns the auto-generated body of a GitHub release into curated
release notes.

The release body is split into its "### " sections, each change is rewritten
as "[<PR>](<link>) <Title>", noise sections such as "Other Changes" are
dropped and dependency bumps are collapsed into one Go and one Docker summary.
The result is rendered through a template as markdown, html, yaml or json.`,
	Example: `  # Release notes for v4.0.0 of nginx/kubernetes-ingress
  release-notes generate 4.0.0 2.0.0 1.25-1.32 "11 February 2025"

  # Another repository, rendered as HTML into a file
  release-notes generate 1.5.0 1.5.0 1.25-1.31 "1 March 2025" \
    --org nginx --repo nginx-gateway-fabric --format html -o notes.html

  # Transform a release body saved locally
  release-notes parse body.md --version 4.0.0`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: .release-notes.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupReleaseNotes, Title: "Release Notes:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration:"},
		&cobra.Group{ID: GroupInternal, Title: "Debugging:"},
	)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cliErrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})
}

// setupGlobals configures logging and colors before any command runs.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	if noColor {
		color.NoColor = true
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
		git.SetDebugLogger(func(format string, args ...any) {
			slog.Debug(fmt.Sprintf(format, args...))
		})
	} else {
		git.SetDebugLogger(nil)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// Execute runs the root command and returns the process exit code.
// Errors are printed with their remediation hints before returning.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	if strings.HasPrefix(err.Error(), "unknown command") {
		err = cliErrors.NewArgumentError(err.Error(), "Run 'release-notes --help' for a list of commands")
	}

	cliErrors.FprintAny(rootCmd.ErrOrStderr(), err)
	return exitCodeFor(err)
}
