//go:build integration

// Package integration contains integration tests for ghpulse.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStubAPI serves a fixed three-day snapshot range plus profile and export
// endpoints, mimicking the analytics backend.
func newStubAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/analytics/snapshots", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"snapshots": [
			{"date": "2024-01-01", "stars": 10, "followers": 100, "following": 50, "publicRepos": 20, "totalCommits": 1000, "contributionCount": 30, "languageStats": {"Go": 5000, "Python": 1200}},
			{"date": "2024-01-02", "stars": 12, "followers": 101, "following": 50, "publicRepos": 20, "totalCommits": 1010, "contributionCount": 33, "languageStats": {"Go": 5100, "Python": 1200}},
			{"date": "2024-01-03", "stars": 14, "followers": 103, "following": 51, "publicRepos": 21, "totalCommits": 1025, "contributionCount": 37, "languageStats": {"Go": 5300, "Python": 1250}}
		]}`))
	})
	mux.HandleFunc("/user/profile", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login": "octocat", "name": "The Octocat", "plan": "pro"}`))
	})
	mux.HandleFunc("/analytics/export", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("date,stars\n2024-01-01,10\n2024-01-02,12\n2024-01-03,14\n"))
	})

	return httptest.NewServer(mux)
}

// runGhpulse executes the built binary against the stub API with persistence
// disabled, returning combined output.
func runGhpulse(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()

	base := []string{
		"--api-url", apiURL,
		"--token", "test-token",
		"--cache-backend", "none",
		"--history-backend", "none",
		"--start", "2024-01-01",
		"--end", "2024-01-03",
	}
	cmd := exec.Command(getGhpulseBinary(), append(args, base...)...)
	cmd.Dir = t.TempDir() // Avoid picking up a local .ghpulse.yaml
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// TestDashboardAgainstStubAPI verifies the summary table end to end.
func TestDashboardAgainstStubAPI(t *testing.T) {
	srv := newStubAPI(t)
	defer srv.Close()

	out, err := runGhpulse(t, srv.URL, "dashboard")
	require.NoError(t, err, "output: %s", out)

	// First and last snapshot values should bracket each summary row.
	assert.Contains(t, out, "Stars")
	assert.Contains(t, out, "Followers")
	assert.Contains(t, out, "+4") // stars delta
	assert.Contains(t, out, "+3") // followers delta
}

// TestTrendJSONAgainstStubAPI verifies series values survive the full pipeline.
func TestTrendJSONAgainstStubAPI(t *testing.T) {
	srv := newStubAPI(t)
	defer srv.Close()

	out, err := runGhpulse(t, srv.URL, "trend", "--metric", "stars", "--output", "json")
	require.NoError(t, err, "output: %s", out)

	var series struct {
		Metric string   `json:"metric"`
		Labels []string `json:"labels"`
		Values []struct {
			Name   string    `json:"name"`
			Values []float64 `json:"values"`
		} `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &series))

	assert.Equal(t, "stars", series.Metric)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, series.Labels)
	require.Len(t, series.Values, 1)
	assert.Equal(t, []float64{10, 12, 14}, series.Values[0].Values)
}

// TestWhoamiAgainstStubAPI verifies profile display.
func TestWhoamiAgainstStubAPI(t *testing.T) {
	srv := newStubAPI(t)
	defer srv.Close()

	out, err := runGhpulse(t, srv.URL, "whoami")
	require.NoError(t, err, "output: %s", out)

	assert.Contains(t, out, "octocat")
}

// TestLanguagesAgainstStubAPI verifies the categorical breakdown comes from
// the latest snapshot in range.
func TestLanguagesAgainstStubAPI(t *testing.T) {
	srv := newStubAPI(t)
	defer srv.Close()

	out, err := runGhpulse(t, srv.URL, "languages", "--output", "csv")
	require.NoError(t, err, "output: %s", out)

	assert.Contains(t, out, "Go,5300")
	assert.Contains(t, out, "Python,1250")
}
