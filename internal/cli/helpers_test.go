package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/nginx/release-notes/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testBody = `## What's Changed
### 🚀 Features
* add support for rate limiting by @dev1 in https://github.com/nginx/kubernetes-ingress/pull/101
### 🐛 Bug Fixes
* fix the bug by @dev3 in https://github.com/nginx/kubernetes-ingress/pull/42
### ⬆️ Dependencies
* Bump the go group with 7 updates by @dependabot[bot] in https://github.com/nginx/kubernetes-ingress/pull/201
* Bump the docker group with 2 updates by @dependabot[bot] in https://github.com/nginx/kubernetes-ingress/pull/202
### Other Changes 🎉
* release 4.0.0 by @dev1 in https://github.com/nginx/kubernetes-ingress/pull/300

## New Contributors
* @newbie made their first contribution in https://github.com/nginx/kubernetes-ingress/pull/104
`

// result is the outcome of one CLI invocation.
type result struct {
	code   int
	stdout string
	stderr string
}

// isolate runs the test in an empty directory with GitHub variables blanked
// and colors disabled.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, name := range []string{"GITHUB_TOKEN", "GITHUB_ORG", "GITHUB_REPO"} {
		t.Setenv(name, "")
	}

	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
	return dir
}

// withFakeGitHub points the CLI at a fake API serving releases.
func withFakeGitHub(t *testing.T, releases ...testutil.FakeRelease) *testutil.FakeGitHub {
	t.Helper()
	fake := testutil.NewFakeGitHub(t, "nginx", "kubernetes-ingress", releases...)
	t.Setenv("RELEASE_NOTES_GITHUB__API_URL", fake.URL())
	return fake
}

// run executes the root command with args and stdin.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	code := Execute(context.Background())
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// resetFlags restores every flag to its default so package level flag
// variables do not leak between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
