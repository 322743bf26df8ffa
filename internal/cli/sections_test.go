package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nginx/release-notes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections_Plain(t *testing.T) {
	isolate(t)

	res := run(t, testBody, "sections")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	for _, want := range []string{
		"### 🚀 Features\n  - add support for rate limiting by @dev1 in https://github.com/nginx/kubernetes-ingress/pull/101\n",
		"### ⬆️ Dependencies (dependencies)\n",
		"### Other Changes 🎉 (skipped)\n",
		"(4 sections, 5 entries)",
	} {
		assert.Contains(t, res.stdout, want)
	}
	assert.NotContains(t, res.stdout, "first contribution")
	assert.Less(t, strings.Index(res.stdout, "Features"), strings.Index(res.stdout, "Bug Fixes"))
}

func TestSections_JSON(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "body.md"), []byte(testBody), 0o644))

	res := run(t, "", "sections", "body.md", "--json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	var sections map[string][]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &sections))
	assert.Len(t, sections, 4)
	assert.Len(t, sections["⬆️ Dependencies"], 2)
	assert.Equal(t, []string{
		"fix the bug by @dev3 in https://github.com/nginx/kubernetes-ingress/pull/42",
	}, sections["🐛 Bug Fixes"])
	assert.Less(t, strings.Index(res.stdout, "Features"), strings.Index(res.stdout, "Other Changes"))
}

func TestSections_Empty(t *testing.T) {
	isolate(t)

	res := run(t, "just some prose\n", "sections")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "No sections found.\n", res.stdout)
}

func TestSections_Release(t *testing.T) {
	isolate(t)
	fake := withFakeGitHub(t, testutil.FakeRelease{ID: 7, TagName: "v4.0.0", Body: testBody})

	res := run(t, "", "sections", "--release", "v4.0.0", "--json")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"🚀 Features"`)
	require.Len(t, fake.Requests(), 1)
	assert.Equal(t, "/repos/nginx/kubernetes-ingress/releases", fake.Requests()[0].URL.Path)
}

func TestSections_Failures(t *testing.T) {
	tests := map[string]struct {
		args     []string
		wantCode int
		wantErr  string
	}{
		"file and release": {
			args:     []string{"body.md", "--release", "4.0.0"},
			wantCode: ExitInvalidArguments,
			wantErr:  "mutually exclusive",
		},
		"too many arguments": {
			args:     []string{"a.md", "b.md"},
			wantCode: ExitInvalidArguments,
			wantErr:  "too many arguments",
		},
		"missing file": {
			args:     []string{"missing.md"},
			wantCode: ExitInvalidArguments,
			wantErr:  "cannot read file: missing.md",
		},
		"unknown release": {
			args:     []string{"--release", "9.9.9"},
			wantCode: ExitReleaseNotFound,
			wantErr:  "release v9.9.9 not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			withFakeGitHub(t, testutil.FakeRelease{ID: 1, TagName: "v4.0.0", Body: testBody})

			res := run(t, "", append([]string{"sections"}, tt.args...)...)
			assert.Equal(t, tt.wantCode, res.code)
			assert.Contains(t, res.stderr, tt.wantErr)
		})
	}
}
