package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/nginx/release-notes/internal/output"
	"github.com/nginx/release-notes/internal/version"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for release-notes",
	Example: `  # Show version info
  release-notes version

  # Plain output (for scripts)
  release-notes version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "release-notes %s\n", version.Version)
	fmt.Fprintf(w, "commit: %s\n", version.Commit)
	fmt.Fprintf(w, "built: %s\n", version.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s\n", version.Platform())
}

// printPrettyVersion prints a styled version output
func printPrettyVersion(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	if version.IsDevBuild() {
		fmt.Fprintf(w, "%s %s (development build)\n\n", cyan("release-notes"), version.Version)
	} else {
		fmt.Fprintf(w, "%s %s\n\n", cyan("release-notes"), version.Version)
	}

	info := []struct {
		label string
		value string
	}{
		{"Commit", version.ShortCommit()},
		{"Built", version.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", version.Platform()},
	}
	for _, item := range info {
		output.PrintKeyValue(w, item.label, 8, item.value)
	}
}
