package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// FakeRelease is the subset of a GitHub release the fake server returns.
type FakeRelease struct {
	ID      int64  `json:"id"`
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	Draft   bool   `json:"draft"`
}

// FakeGitHub serves GET /repos/{org}/{repo} and GET /repos/{org}/{repo}/releases
// with page and per_page support. Releases are served newest first, in the
// order they were added.
type FakeGitHub struct {
	Server *httptest.Server

	mu       sync.Mutex
	org      string
	repo     string
	releases []FakeRelease
	status   int
	message  string
	requests []*http.Request
}

// NewFakeGitHub starts a fake API for org/repo that is closed with the test.
func NewFakeGitHub(t *testing.T, org, repo string, releases ...FakeRelease) *FakeGitHub {
	t.Helper()

	f := &FakeGitHub{org: org, repo: repo, releases: releases}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to configure as github.api_url.
func (f *FakeGitHub) URL() string {
	return f.Server.URL
}

// FailWith makes every request answer with status and a GitHub style message.
func (f *FakeGitHub) FailWith(status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.message = message
}

// Requests returns the requests received so far.
func (f *FakeGitHub) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

func (f *FakeGitHub) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r)

	w.Header().Set("Content-Type", "application/json")

	if f.status != 0 {
		w.WriteHeader(f.status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": f.message})
		return
	}

	repoPath := "/repos/" + f.org + "/" + f.repo
	if r.URL.Path == repoPath {
		w.Header().Set("X-RateLimit-Remaining", "59")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"full_name":      f.org + "/" + f.repo,
			"default_branch": "main",
			"private":        false,
		})
		return
	}

	if r.URL.Path != repoPath+"/releases" {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
		return
	}

	perPage := atoiDefault(r.URL.Query().Get("per_page"), 30)
	page := atoiDefault(r.URL.Query().Get("page"), 1)

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(f.releases) {
		start = len(f.releases)
	}
	if end > len(f.releases) {
		end = len(f.releases)
	}

	result := append([]FakeRelease{}, f.releases[start:end]...)
	_ = json.NewEncoder(w).Encode(result)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
