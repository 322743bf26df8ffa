package testutil

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getReleases(t *testing.T, url string) (int, []FakeRelease) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var releases []FakeRelease
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&releases))
	}
	return resp.StatusCode, releases
}

func TestFakeGitHub_Pagination(t *testing.T) {
	fake := NewFakeGitHub(t, "nginx", "kubernetes-ingress",
		FakeRelease{ID: 3, TagName: "v3.0.0"},
		FakeRelease{ID: 2, TagName: "v2.0.0"},
		FakeRelease{ID: 1, TagName: "v1.0.0"},
	)
	base := fake.URL() + "/repos/nginx/kubernetes-ingress/releases"

	tests := map[string]struct {
		query    string
		wantTags []string
	}{
		"first page":  {query: "?per_page=2&page=1", wantTags: []string{"v3.0.0", "v2.0.0"}},
		"second page": {query: "?per_page=2&page=2", wantTags: []string{"v1.0.0"}},
		"past end":    {query: "?per_page=2&page=5", wantTags: []string{}},
		"defaults":    {query: "", wantTags: []string{"v3.0.0", "v2.0.0", "v1.0.0"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			status, releases := getReleases(t, base+tt.query)
			require.Equal(t, http.StatusOK, status)

			tags := []string{}
			for _, r := range releases {
				tags = append(tags, r.TagName)
			}
			assert.Equal(t, tt.wantTags, tags)
		})
	}
	assert.Len(t, fake.Requests(), len(tests))
}

func TestFakeGitHub_Errors(t *testing.T) {
	fake := NewFakeGitHub(t, "nginx", "kubernetes-ingress")

	status, _ := getReleases(t, fake.URL()+"/repos/other/repo/releases")
	assert.Equal(t, http.StatusNotFound, status)

	fake.FailWith(http.StatusForbidden, "API rate limit exceeded")
	status, _ = getReleases(t, fake.URL()+"/repos/nginx/kubernetes-ingress/releases")
	assert.Equal(t, http.StatusForbidden, status)
}
