package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nginx/release-notes/internal/config"
	cliErrors "github.com/nginx/release-notes/internal/errors"
	"github.com/nginx/release-notes/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configShowJSON  bool
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage release-notes configuration",
	Long: `Manage release-notes configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command flags (--org, --repo, --format, --template)
  2. Environment variables (GITHUB_TOKEN, GITHUB_ORG, GITHUB_REPO, RELEASE_NOTES_*)
  3. Project config (.release-notes.yml, or --config)
  4. .env file in the current directory
  5. GitHub repository of the "origin" git remote
  6. Built-in defaults`,
	Example: `  # Show the effective configuration
  release-notes config show

  # Create .release-notes.yml with all options documented
  release-notes config init

  # List every key
  release-notes config keys`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  "Show the configuration after all sources are merged. The token is masked.",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented .release-notes.yml",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys [key]",
	Short: "List configuration keys, or describe one",
	Example: `  # Every key with its type and environment variables
  release-notes config keys

  # A single key
  release-notes config keys github.per_page`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigKeys,
}

func init() {
	configCmd.GroupID = GroupConfig
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "Output in JSON format")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd, configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

// configView mirrors config.Configuration with output tags.
type configView struct {
	GitHub struct {
		Org     string `json:"org" yaml:"org"`
		Repo    string `json:"repo" yaml:"repo"`
		Token   string `json:"token" yaml:"token"`
		APIURL  string `json:"api_url" yaml:"api_url"`
		PerPage int    `json:"per_page" yaml:"per_page"`
		Timeout string `json:"timeout" yaml:"timeout"`
	} `json:"github" yaml:"github"`
	Format   string `json:"format" yaml:"format"`
	Template string `json:"template" yaml:"template"`
}

func newConfigView(cfg config.Configuration) configView {
	var v configView
	v.GitHub.Org = cfg.GitHub.Org
	v.GitHub.Repo = cfg.GitHub.Repo
	v.GitHub.Token = cfg.GitHub.Token
	v.GitHub.APIURL = cfg.GitHub.APIURL
	v.GitHub.PerPage = cfg.GitHub.PerPage
	v.GitHub.Timeout = cfg.GitHub.Timeout.String()
	v.Format = cfg.Format
	v.Template = cfg.Template
	return v
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	view := newConfigView(cfg.Redacted())

	out := cmd.OutOrStdout()
	if configShowJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := config.ProjectConfigPath()
	if cfgFile != "" {
		path = cfgFile
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return cliErrors.NewArgumentError(
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it",
		)
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return cliErrors.FileNotWritable(path, err)
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created %s", path))
	return nil
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	keys := config.SortedKeys()
	if len(args) == 1 {
		if _, err := config.GetKeySchema(args[0]); err != nil {
			return cliErrors.NewArgumentError(err.Error(),
				"List valid keys with: release-notes config keys")
		}
		keys = args[:1]
	}

	out := cmd.OutOrStdout()
	for _, key := range keys {
		schema := config.KnownKeys[key]
		desc := schema.Description
		if schema.Sensitive {
			desc += " (redacted by config show)"
		}
		fmt.Fprintf(out, "%-16s %-36s %s\n", key, schema.TypeHint(), desc)

		envs := config.EnvVarName(key)
		if schema.Env != "" {
			envs = schema.Env + ", " + envs
		}
		fmt.Fprintf(out, "%-16s env: %s\n", "", envs)
	}
	return nil
}
