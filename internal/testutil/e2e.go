// Package testutil provides test utilities and helpers for release-notes tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// passthroughEnv lists the host variables a command under test may see.
// Credentials are never among them.
var passthroughEnv = []string{"PATH", "TMPDIR", "TMP", "TEMP", "LANG", "LC_ALL"}

// releaseNotesBinary builds cmd/release-notes once per test process.
var releaseNotesBinary = sync.OnceValues(func() (string, error) {
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("locating testutil sources")
	}
	root := filepath.Join(filepath.Dir(self), "..", "..")

	outDir, err := os.MkdirTemp("", "release-notes-e2e-*")
	if err != nil {
		return "", fmt.Errorf("creating build directory: %w", err)
	}
	bin := filepath.Join(outDir, "release-notes")

	build := exec.Command("go", "build", "-o", bin, "./cmd/release-notes")
	build.Dir = root
	if out, err := build.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\n%s", err, out)
	}
	return bin, nil
})

// E2EEnv runs the real release-notes binary in a temporary working
// directory against a FakeGitHub, with a scrubbed environment.
type E2EEnv struct {
	t      *testing.T
	dir    string
	bin    string
	vars   map[string]string
	GitHub *FakeGitHub
}

// CommandResult is the outcome of one release-notes invocation.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// NewE2EEnv builds the binary if needed and points it at a fake GitHub API
// serving releases for org/repo.
func NewE2EEnv(t *testing.T, org, repo string, releases ...FakeRelease) *E2EEnv {
	t.Helper()

	bin, err := releaseNotesBinary()
	if err != nil {
		t.Fatalf("building release-notes: %v", err)
	}

	gh := NewFakeGitHub(t, org, repo, releases...)
	return &E2EEnv{
		t:   t,
		dir: t.TempDir(),
		bin: bin,
		vars: map[string]string{
			"RELEASE_NOTES_GITHUB__API_URL": gh.URL(),
			"GITHUB_ORG":                    org,
			"GITHUB_REPO":                   repo,
		},
		GitHub: gh,
	}
}

// SetEnv sets a variable for commands run in this environment.
func (e *E2EEnv) SetEnv(key, value string) {
	e.vars[key] = value
}

// WriteFile writes name into the working directory and returns its path.
func (e *E2EEnv) WriteFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// ReadFile returns the contents of name in the working directory.
func (e *E2EEnv) ReadFile(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	if err != nil {
		e.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// Run executes release-notes with args and empty stdin.
func (e *E2EEnv) Run(args ...string) CommandResult {
	return e.RunWithInput("", args...)
}

// RunWithInput executes release-notes with args, feeding input on stdin.
// A process that cannot be started reports exit code 1.
func (e *E2EEnv) RunWithInput(input string, args ...string) CommandResult {
	e.t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(e.bin, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := CommandResult{}
	if err := cmd.Run(); err != nil {
		res.ExitCode = 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
	}
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	return res
}

func (e *E2EEnv) environ() []string {
	env := []string{"HOME=" + e.dir, "NO_COLOR=1"}
	for _, key := range passthroughEnv {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}
	for key, val := range e.vars {
		env = append(env, key+"="+val)
	}
	return env
}
