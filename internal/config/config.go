// Package config provides hierarchical configuration management for
// release-notes using koanf. Configuration is loaded with priority:
// environment variables > project config (.release-notes.yml or --config) >
// a local .env file > repository inferred from the git remote > defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/nginx/release-notes/internal/git"
	"github.com/nginx/release-notes/internal/output"
)

// EnvPrefix is the prefix of release-notes specific environment variables.
// Nested keys use a double underscore: RELEASE_NOTES_GITHUB__API_URL.
const EnvPrefix = "RELEASE_NOTES_"

const msgConfigFileNotFound = "config file not found"

// githubEnv maps the conventional GitHub variables onto config keys.
var githubEnv = map[string]string{
	"GITHUB_TOKEN": "github.token",
	"GITHUB_ORG":   "github.org",
	"GITHUB_REPO":  "github.repo",
}

// Configuration represents the release-notes configuration
type Configuration struct {
	GitHub GitHubConfig `koanf:"github"`

	// Format is the default output format: markdown | html | yaml | json.
	Format string `koanf:"format" validate:"oneof=markdown md html yaml yml json"`

	// Template is an optional path to a text/template file replacing the
	// embedded release notes template.
	Template string `koanf:"template"`
}

// GitHubConfig holds the settings of the release fetch.
type GitHubConfig struct {
	Org     string        `koanf:"org" validate:"required"`
	Repo    string        `koanf:"repo" validate:"required"`
	Token   string        `koanf:"token"`
	APIURL  string        `koanf:"api_url" validate:"required,url"`
	PerPage int           `koanf:"per_page" validate:"min=1,max=100"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .release-notes.yml).
	// An explicit path must exist.
	ProjectConfigPath string
	// EnvFile is the dotenv file to load (default: .env). Missing files are ignored.
	EnvFile string
	// RepoPath is where the git remote is looked up (default: current directory).
	RepoPath string
	// SkipGitInference disables reading org/repo from the git remote.
	SkipGitInference bool
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
}

// Load loads configuration from all sources using default options.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if !opts.SkipGitInference {
		loadGitRemote(k, opts.RepoPath)
	}

	if err := loadDotEnv(k, opts.EnvFile, warningWriter); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadGitRemote sets org and repo from the "origin" remote when it points
// at GitHub. Failures only mean there is nothing to infer.
func loadGitRemote(k *koanf.Koanf, repoPath string) {
	org, repo, err := git.RemoteRepository(repoPath, git.DefaultRemote)
	if err != nil {
		slog.Debug("not inferring repository from git remote", "error", err)
		return
	}
	slog.Debug("inferred repository from git remote", "org", org, "repo", repo)
	k.Set("github.org", org)
	k.Set("github.repo", repo)
}

// loadProjectConfig loads the project YAML config. The default path is
// optional; an explicitly given path must exist.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		path = customPath
		if !fileExists(path) {
			return &ValidationError{FilePath: path, Message: msgConfigFileNotFound}
		}
	}

	if !fileExists(path) {
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for project config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	slog.Debug("loaded project config", "path", path)
	return nil
}

// loadDotEnv reads a dotenv file and applies the variables it knows about.
// The process environment is left untouched so real variables still win.
func loadDotEnv(k *koanf.Koanf, path string, warningWriter io.Writer) error {
	if path == "" {
		path = DotEnvPath()
	}
	if !fileExists(path) {
		return nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	for name, value := range vars {
		if key := envKey(name); key != "" {
			k.Set(key, value)
		}
	}

	if permissive, err := isWorldReadable(path); err == nil && permissive && vars["GITHUB_TOKEN"] != "" {
		output.PrintWarning(warningWriter, fmt.Sprintf("%s contains GITHUB_TOKEN and is readable by other users", path))
	}
	slog.Debug("loaded dotenv file", "path", path, "variables", len(vars))
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue("GITHUB_", ".", githubEnvValue), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.GitHub.APIURL = strings.TrimRight(cfg.GitHub.APIURL, "/")
	cfg.Template = expandHomePath(cfg.Template)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Redacted returns a copy safe to print, with the token masked.
func (c Configuration) Redacted() Configuration {
	if c.GitHub.Token != "" {
		c.GitHub.Token = "********"
	}
	return c
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func isWorldReadable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&0o004 != 0, nil
}

// githubEnvTransform keeps only GITHUB_TOKEN, GITHUB_ORG and GITHUB_REPO.
func githubEnvTransform(s string) string {
	return githubEnv[s]
}

// githubEnvValue is githubEnvTransform that also ignores empty variables,
// so an exported but blank GITHUB_ORG does not clear the configured org.
func githubEnvValue(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return githubEnvTransform(key), value
}

// envKey maps any supported variable name to its config key, or "".
func envKey(name string) string {
	if key := githubEnvTransform(name); key != "" {
		return key
	}
	if strings.HasPrefix(name, EnvPrefix) {
		return envTransform(name)
	}
	return ""
}

// envTransform converts environment variable names to config keys
// Example: RELEASE_NOTES_GITHUB__PER_PAGE -> github.per_page
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return homeDir + path[1:]
		}
	}
	return path
}
