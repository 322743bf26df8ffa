package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a formatted error.
type palette struct {
	label      func(a ...interface{}) string
	message    func(a ...interface{}) string
	category   func(a ...interface{}) string
	usageLabel func(a ...interface{}) string
	usage      func(a ...interface{}) string
	fix        func(a ...interface{}) string
	bullet     func(a ...interface{}) string
}

// colored follows color.NoColor, so it degrades to plain text when stderr is
// not a terminal or NO_COLOR is set.
var colored = palette{
	label:      color.New(color.FgRed, color.Bold).SprintFunc(),
	message:    color.New(color.FgRed).SprintFunc(),
	category:   color.New(color.FgYellow).SprintFunc(),
	usageLabel: color.New(color.FgCyan, color.Bold).SprintFunc(),
	usage:      color.New(color.FgCyan).SprintFunc(),
	fix:        color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:     color.New(color.FgGreen).SprintFunc(),
}

var plain = palette{
	label:      fmt.Sprint,
	message:    fmt.Sprint,
	category:   fmt.Sprint,
	usageLabel: fmt.Sprint,
	usage:      fmt.Sprint,
	fix:        fmt.Sprint,
	bullet:     fmt.Sprint,
}

// FormatError formats a CLIError for display in the terminal.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, colored)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, plain)
}

// formatError renders:
//
//	Error [Category]: message
//
//	Usage: usage
//
//	To fix this:
//	  • step
func formatError(err *CLIError, p palette) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FprintAny prints err to w, formatting CLIErrors with their guidance and
// any other error as a Runtime error.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error()}
	}
	FprintError(w, cliErr)
}
