package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDates() (schema.CalDate, schema.CalDate) {
	return schema.NewCalDate(2024, time.January, 1), schema.NewCalDate(2024, time.January, 31)
}

func TestFetchSnapshots_Success(t *testing.T) {
	var gotAuth, gotStart, gotEnd string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analytics/snapshots", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotStart = r.URL.Query().Get("startDate")
		gotEnd = r.URL.Query().Get("endDate")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"snapshots":[
			{"date":"2024-01-01","stars":10,"followers":4,"following":2,"publicRepos":5,"totalCommits":100},
			{"date":"2024-01-31","stars":25,"followers":6,"following":2,"publicRepos":6,"totalCommits":140}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL, "tok-abc")
	start, end := testDates()
	snaps, err := client.FetchSnapshots(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "2024-01-01", gotStart)
	assert.Equal(t, "2024-01-31", gotEnd)
	require.Len(t, snaps, 2)
	assert.Equal(t, 10, snaps[0].Stars)
	assert.Equal(t, 25, snaps[1].Stars)
}

func TestFetchSnapshots_EmptyIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"snapshots":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	start, end := testDates()
	snaps, err := client.FetchSnapshots(context.Background(), start, end)
	require.NoError(t, err)
	assert.NotNil(t, snaps)
	assert.Empty(t, snaps)
}

func TestFetchSnapshots_NullSnapshotsBecomesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"snapshots":null}`))
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	start, end := testDates()
	snaps, err := client.FetchSnapshots(context.Background(), start, end)
	require.NoError(t, err)
	assert.NotNil(t, snaps)
	assert.Empty(t, snaps)
}

func TestFetchSnapshots_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status   int
		expected error
	}{
		{http.StatusUnauthorized, contract.ErrUnauthenticated},
		{http.StatusForbidden, contract.ErrUnauthorized},
		{http.StatusInternalServerError, contract.ErrUnavailable},
		{http.StatusBadGateway, contract.ErrUnavailable},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))

		client := New(server.URL, "tok")
		start, end := testDates()
		_, err := client.FetchSnapshots(context.Background(), start, end)
		assert.ErrorIs(t, err, tt.expected, "status %d", tt.status)
		server.Close()
	}
}

func TestFetchSnapshots_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // Connection refused from here on.

	client := New(server.URL, "tok")
	start, end := testDates()
	_, err := client.FetchSnapshots(context.Background(), start, end)
	assert.ErrorIs(t, err, contract.ErrUnavailable)
}

func TestExportRange_TransportFailureIsExportFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // Connection refused from here on.

	client := New(server.URL, "tok")
	start, end := testDates()
	_, err := client.ExportRange(context.Background(), schema.CSVExport, start, end)
	assert.ErrorIs(t, err, contract.ErrExportFailed)
	assert.NotErrorIs(t, err, contract.ErrUnavailable)
}

func TestFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/profile", r.URL.Path)
		_, _ = w.Write([]byte(`{"login":"octocat","name":"The Octocat","plan":"pro"}`))
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	profile, err := client.FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.Login)
	assert.Equal(t, "pro", profile.Plan)
}

func TestExportRange_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analytics/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte("date,stars\n2024-01-01,10\n"))
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	start, end := testDates()
	payload, err := client.ExportRange(context.Background(), schema.CSVExport, start, end)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "2024-01-01,10")
}

func TestExportRange_FailureIsExportFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	start, end := testDates()
	_, err := client.ExportRange(context.Background(), schema.JSONExport, start, end)
	assert.ErrorIs(t, err, contract.ErrExportFailed)
}
