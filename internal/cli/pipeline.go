package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nginx/release-notes/internal/changelog"
	"github.com/nginx/release-notes/internal/config"
	cliErrors "github.com/nginx/release-notes/internal/errors"
	"github.com/nginx/release-notes/internal/output"
	"github.com/spf13/cobra"
)

// stdinPath selects standard input wherever a file argument is accepted.
const stdinPath = "-"

// renderFlags are shared by every command that produces a document.
type renderFlags struct {
	format   string
	template string
	output   string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: markdown, html, yaml, json (default from config: markdown)")
	cmd.Flags().StringVar(&f.template, "template", "", "Custom text/template file for markdown and html output")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write to file instead of stdout")
}

// loadConfig loads configuration for cmd and maps failures to CLI errors.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: cfgFile,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		if config.IsConfigFileNotFound(err) {
			return nil, cliErrors.ConfigFileNotFound(cfgFile)
		}
		return nil, cliErrors.ConfigParseError(err)
	}
	slog.Debug("configuration loaded",
		"org", cfg.GitHub.Org, "repo", cfg.GitHub.Repo,
		"api_url", cfg.GitHub.APIURL, "authenticated", cfg.GitHub.Token != "")
	return cfg, nil
}

// renderOptions resolves the output format and template, flags first.
func (f *renderFlags) renderOptions(cmd *cobra.Command, cfg *config.Configuration) (changelog.RenderOptions, string, error) {
	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName = f.format
	}
	format, err := changelog.ParseFormat(formatName)
	if err != nil {
		return changelog.RenderOptions{}, "", cliErrors.InvalidFormat(formatName)
	}

	templatePath := cfg.Template
	if cmd.Flags().Changed("template") {
		templatePath = f.template
	}
	content, err := changelog.LoadTemplate(templatePath)
	if err != nil {
		return changelog.RenderOptions{}, "", cliErrors.TemplateError(templatePath, err)
	}

	return changelog.RenderOptions{Format: format, Template: content}, templatePath, nil
}

// buildDocument runs the transformation and maps body errors to CLI errors.
func buildDocument(body string, params changelog.Params) (*changelog.Document, error) {
	doc, err := changelog.Build(body, params)
	switch {
	case err == nil:
		return doc, nil
	case changelog.IsMalformedEntryError(err):
		return nil, cliErrors.MalformedReleaseBody(err)
	case changelog.IsEmptyDependencyBucketError(err):
		return nil, cliErrors.EmptyDependencyBucket(err)
	default:
		return nil, cliErrors.Wrap(err, cliErrors.Runtime)
	}
}

// renderAndWrite renders doc completely before anything reaches the
// destination, so a failure never leaves a partial document behind.
func (f *renderFlags) renderAndWrite(cmd *cobra.Command, doc *changelog.Document, opts changelog.RenderOptions, templatePath string) error {
	var buf bytes.Buffer
	if err := changelog.Render(doc, &buf, opts); err != nil {
		if templatePath != "" {
			return cliErrors.TemplateError(templatePath, err)
		}
		return cliErrors.WrapWithMessage(err, cliErrors.Runtime, "rendering release notes")
	}
	return writeOutput(cmd, f.output, buf.Bytes(), fmt.Sprintf("Wrote %s release notes for %s to %s", opts.Format, displayVersion(doc.Version), f.output))
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte, success string) error {
	if path == "" || path == stdinPath {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return cliErrors.FileNotWritable(path, err)
	}
	output.PrintSuccess(cmd.ErrOrStderr(), success)
	return nil
}

// readBody reads a release body from a file argument or standard input.
func readBody(cmd *cobra.Command, args []string) (string, error) {
	path := stdinPath
	if len(args) > 0 {
		path = args[0]
	}

	var data []byte
	var err error
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", cliErrors.FileNotReadable(path, err)
	}
	slog.Debug("read release body", "path", path, "bytes", len(data))
	return string(data), nil
}

// normalizeVersion drops a leading "v" so "v4.0.0" and "4.0.0" find the same
// tag. The document keeps the version exactly as given.
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 1 && (v[0] == 'v' || v[0] == 'V') && v[1] >= '0' && v[1] <= '9' {
		return v[1:]
	}
	return v
}

func displayVersion(v string) string {
	if v == "" {
		return "(unversioned)"
	}
	return v
}
