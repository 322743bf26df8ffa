//go:build e2e

package e2e

import (
	"net/http"
	"testing"

	"github.com/nginx/release-notes/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// TestE2E_ExitCodes verifies the process exit code of each failure class.
func TestE2E_ExitCodes(t *testing.T) {
	tests := map[string]struct {
		setup        func(env *testutil.E2EEnv)
		args         []string
		wantExitCode int
		wantStderr   string
	}{
		"success": {
			args:         []string{"version", "--plain"},
			wantExitCode: 0,
		},
		"runtime failure": {
			setup: func(env *testutil.E2EEnv) {
				env.GitHub.FailWith(http.StatusInternalServerError, "boom")
			},
			args:         []string{"generate", "4.0.0", "2.0.0", "1.25-1.32", "11 February 2025"},
			wantExitCode: 1,
			wantStderr:   "Error [Runtime Error]: failed to fetch release",
		},
		"invalid arguments": {
			args:         []string{"generate", "4.0.0"},
			wantExitCode: 3,
			wantStderr:   "Error [Argument Error]: expected 4 arguments, got 1",
		},
		"unknown flag": {
			args:         []string{"generate", "--nope"},
			wantExitCode: 3,
			wantStderr:   "unknown flag: --nope",
		},
		"configuration error": {
			setup: func(env *testutil.E2EEnv) {
				env.SetEnv("RELEASE_NOTES_GITHUB__PER_PAGE", "0")
			},
			args:         []string{"config", "show"},
			wantExitCode: 4,
			wantStderr:   "Error [Configuration Error]: invalid configuration",
		},
		"release not found": {
			args:         []string{"generate", "9.9.9", "2.0.0", "1.25-1.32", "11 February 2025"},
			wantExitCode: 6,
			wantStderr:   "Error [Not Found]: release v9.9.9 not found in nginx/kubernetes-ingress",
		},
		"malformed body": {
			setup: func(env *testutil.E2EEnv) {
				env.WriteFile("body.md", "### Fixes\n* a change without author\n")
			},
			args:         []string{"parse", "body.md"},
			wantExitCode: 7,
			wantStderr:   "Error [Input Error]:",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newEnv(t)
			if tt.setup != nil {
				tt.setup(env)
			}

			result := env.Run(tt.args...)
			assert.Equal(t, tt.wantExitCode, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
			if tt.wantStderr != "" {
				assert.Contains(t, result.Stderr, tt.wantStderr)
			}
		})
	}
}
