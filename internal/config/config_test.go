package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with the GitHub variables blanked.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, name := range []string{"GITHUB_TOKEN", "GITHUB_ORG", "GITHUB_REPO"} {
		t.Setenv(name, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithOptions(LoadOptions{SkipGitInference: true})
	require.NoError(t, err)

	assert.Equal(t, DefaultOrg, cfg.GitHub.Org)
	assert.Equal(t, DefaultRepo, cfg.GitHub.Repo)
	assert.Equal(t, DefaultAPIURL, cfg.GitHub.APIURL)
	assert.Equal(t, DefaultPerPage, cfg.GitHub.PerPage)
	assert.Equal(t, DefaultTimeout, cfg.GitHub.Timeout)
	assert.Empty(t, cfg.GitHub.Token)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Empty(t, cfg.Template)
}

func TestLoad_Priority(t *testing.T) {
	tests := map[string]struct {
		dotenv   string
		project  string
		env      map[string]string
		wantOrg  string
		wantRepo string
		wantTok  string
	}{
		"project file overrides defaults": {
			project:  "github:\n  org: acme\n  repo: widgets\n",
			wantOrg:  "acme",
			wantRepo: "widgets",
		},
		"dotenv overrides defaults": {
			dotenv:   "GITHUB_ORG=dotenv-org\nGITHUB_TOKEN=from-dotenv\n",
			wantOrg:  "dotenv-org",
			wantRepo: DefaultRepo,
			wantTok:  "from-dotenv",
		},
		"project file overrides dotenv": {
			dotenv:   "GITHUB_ORG=dotenv-org\n",
			project:  "github:\n  org: file-org\n",
			wantOrg:  "file-org",
			wantRepo: DefaultRepo,
		},
		"environment overrides project file": {
			project:  "github:\n  org: file-org\n  repo: file-repo\n",
			env:      map[string]string{"GITHUB_ORG": "env-org", "GITHUB_TOKEN": "env-token"},
			wantOrg:  "env-org",
			wantRepo: "file-repo",
			wantTok:  "env-token",
		},
		"prefixed variables override GITHUB ones": {
			env:      map[string]string{"GITHUB_REPO": "plain", "RELEASE_NOTES_GITHUB__REPO": "prefixed"},
			wantOrg:  DefaultOrg,
			wantRepo: "prefixed",
		},
		"blank environment variables are ignored": {
			project:  "github:\n  org: file-org\n",
			env:      map[string]string{"GITHUB_ORG": ""},
			wantOrg:  "file-org",
			wantRepo: DefaultRepo,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			if tt.dotenv != "" {
				writeFile(t, filepath.Join(dir, ".env"), tt.dotenv, 0o600)
			}
			if tt.project != "" {
				writeFile(t, filepath.Join(dir, ProjectConfigFile), tt.project, 0o644)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadWithOptions(LoadOptions{SkipGitInference: true})
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrg, cfg.GitHub.Org)
			assert.Equal(t, tt.wantRepo, cfg.GitHub.Repo)
			assert.Equal(t, tt.wantTok, cfg.GitHub.Token)
		})
	}
}

func TestLoad_DotEnvDoesNotTouchProcessEnvironment(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "GITHUB_TOKEN=from-dotenv\n", 0o600)

	cfg, err := LoadWithOptions(LoadOptions{SkipGitInference: true})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.GitHub.Token)
	assert.Empty(t, os.Getenv("GITHUB_TOKEN"))
}

func TestLoad_DotEnvPermissionWarning(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "GITHUB_TOKEN=secret\n", 0o600)
	require.NoError(t, os.Chmod(path, 0o644))

	var warnings bytes.Buffer
	_, err := LoadWithOptions(LoadOptions{SkipGitInference: true, WarningWriter: &warnings})
	require.NoError(t, err)
	assert.Contains(t, warnings.String(), "readable by other users")
}

func TestLoad_NestedEnvironmentKeys(t *testing.T) {
	isolate(t)
	t.Setenv("RELEASE_NOTES_GITHUB__PER_PAGE", "25")
	t.Setenv("RELEASE_NOTES_GITHUB__TIMEOUT", "5s")
	t.Setenv("RELEASE_NOTES_GITHUB__API_URL", "https://ghe.example.com/api/v3/")
	t.Setenv("RELEASE_NOTES_FORMAT", "HTML")

	cfg, err := LoadWithOptions(LoadOptions{SkipGitInference: true})
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.GitHub.PerPage)
	assert.Equal(t, 5*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, "https://ghe.example.com/api/v3", cfg.GitHub.APIURL, "trailing slash is trimmed")
	assert.Equal(t, "html", cfg.Format)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	dir := isolate(t)

	custom := filepath.Join(dir, "custom.yml")
	writeFile(t, custom, "format: yaml\ngithub:\n  timeout: 1m\n", 0o644)

	cfg, err := Load(custom)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, time.Minute, cfg.GitHub.Timeout)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "config file not found")
	assert.True(t, IsConfigFileNotFound(err))
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := map[string]struct {
		project   string
		wantField string
		wantMsg   string
	}{
		"per_page too small": {
			project:   "github:\n  per_page: 0\n",
			wantField: "github.per_page",
			wantMsg:   "must be at least 1",
		},
		"per_page too large": {
			project:   "github:\n  per_page: 101\n",
			wantField: "github.per_page",
			wantMsg:   "must be at most 100",
		},
		"unknown format": {
			project:   "format: pdf\n",
			wantField: "format",
			wantMsg:   "must be one of",
		},
		"empty org": {
			project:   "github:\n  org: \"\"\n",
			wantField: "github.org",
			wantMsg:   "is required",
		},
		"invalid api url": {
			project:   "github:\n  api_url: not a url\n",
			wantField: "github.api_url",
			wantMsg:   "must be a valid URL",
		},
		"timeout below one second": {
			project:   "github:\n  timeout: 10ms\n",
			wantField: "github.timeout",
			wantMsg:   "must be at least 1s",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, filepath.Join(dir, ProjectConfigFile), tt.project, 0o644)

			_, err := LoadWithOptions(LoadOptions{SkipGitInference: true})
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Contains(t, ve.Message, tt.wantMsg)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ProjectConfigFile), "github:\n  org: [unclosed\n", 0o644)

	_, err := LoadWithOptions(LoadOptions{SkipGitInference: true})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), ProjectConfigFile)
}

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	tests := map[string]struct {
		data     string
		wantErr  bool
		wantLine int
	}{
		"empty":          {data: "   \n"},
		"valid mapping":  {data: "format: json\n"},
		"scalar at root": {data: "just a string\n", wantErr: true, wantLine: 1},
		"list at root":   {data: "- a\n- b\n", wantErr: true, wantLine: 1},
		"unclosed flow sequence": {
			data:     "github: [a, b\n",
			wantErr:  true,
			wantLine: -1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateYAMLSyntaxFromBytes([]byte(tt.data), "cfg.yml")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, ve.Line)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := map[string]struct {
		err  ValidationError
		want string
	}{
		"with line": {
			err:  ValidationError{FilePath: "a.yml", Line: 3, Column: 2, Message: "bad"},
			want: "a.yml:3:2: bad",
		},
		"with field": {
			err:  ValidationError{FilePath: "config", Field: "format", Message: "bad"},
			want: "config: field 'format': bad",
		},
		"plain": {
			err:  ValidationError{FilePath: "a.yml", Message: "bad"},
			want: "a.yml: bad",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"top level": {input: "RELEASE_NOTES_FORMAT", want: "format"},
		"nested":    {input: "RELEASE_NOTES_GITHUB__PER_PAGE", want: "github.per_page"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, envTransform(tt.input))
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "github.token", envKey("GITHUB_TOKEN"))
	assert.Equal(t, "github.api_url", envKey("RELEASE_NOTES_GITHUB__API_URL"))
	assert.Empty(t, envKey("GITHUB_ACTIONS"))
	assert.Empty(t, envKey("HOME"))
}

func TestRedacted(t *testing.T) {
	cfg := Configuration{GitHub: GitHubConfig{Token: "secret"}}
	assert.Equal(t, "********", cfg.Redacted().GitHub.Token)
	assert.Equal(t, "secret", cfg.GitHub.Token, "original is unchanged")
	assert.Empty(t, Configuration{}.Redacted().GitHub.Token)
}

func TestDefaultConfigTemplateIsValid(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ProjectConfigFile), GetDefaultConfigTemplate(), 0o644)

	cfg, err := LoadWithOptions(LoadOptions{SkipGitInference: true})
	require.NoError(t, err)
	assert.Equal(t, DefaultOrg, cfg.GitHub.Org)
	assert.Equal(t, DefaultTimeout, cfg.GitHub.Timeout)
}

func TestKnownKeysCoverDefaults(t *testing.T) {
	for key := range GetDefaults() {
		_, err := GetKeySchema(key)
		assert.NoError(t, err, key)
	}
	assert.Len(t, SortedKeys(), len(GetDefaults()))

	_, err := GetKeySchema("nope")
	assert.EqualError(t, err, "unknown configuration key: nope")
	assert.Equal(t, "RELEASE_NOTES_GITHUB__PER_PAGE", EnvVarName("github.per_page"))
	assert.Equal(t, "enum (markdown|html|yaml|json)", KnownKeys["format"].TypeHint())
}
