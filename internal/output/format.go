// Package output provides terminal output formatting utilities for the
// release-notes CLI. It has minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSuccess prints a green checkmark followed by a cyan message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("Warning:"), message)
}

// PrintKeyValue prints an aligned "key  value" row with a dim key.
func PrintKeyValue(out io.Writer, key string, width int, value string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "  %s  %s\n", dim(fmt.Sprintf("%-*s", width, key)), value)
}
