package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/averykuo/ghpulse/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(LoadRun))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"run_id",
		"issued_at",
		"completed_at",
		"start_date",
		"end_date",
		"snapshot_count",
		"outcome",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestSnapshotRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(SnapshotRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"date",
		"stars",
		"followers",
		"following",
		"public_repos",
		"total_commits",
		"contribution_count",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteLoadRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "load_runs.parquet")

	now := time.Now()
	data := ConvertLoadRuns([]schema.LoadRun{
		{
			ID:            1,
			IssuedAt:      now.Add(-time.Minute),
			CompletedAt:   now,
			StartDate:     "2024-01-01",
			EndDate:       "2024-01-31",
			SnapshotCount: 31,
			Outcome:       schema.LoadApplied,
		},
		{
			ID:            2,
			IssuedAt:      now,
			CompletedAt:   now,
			StartDate:     "2024-02-01",
			EndDate:       "2024-02-29",
			SnapshotCount: 0,
			Outcome:       schema.LoadEmpty,
		},
	})

	err := WriteLoadRunsParquet(data, outputPath)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// Read back and verify round trip
	rows, err := parquet.ReadFile[LoadRun](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, "applied", rows[0].Outcome)
	assert.Equal(t, int32(0), rows[1].SnapshotCount)
}

func TestWriteSnapshotsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "snapshots.parquet")

	data := ConvertSnapshots([]schema.Snapshot{
		{
			Date:         schema.NewCalDate(2024, time.January, 1),
			Stars:        100,
			Followers:    50,
			Following:    10,
			PublicRepos:  12,
			TotalCommits: 2400,
		},
		{
			Date:         schema.NewCalDate(2024, time.January, 2),
			Stars:        105,
			Followers:    51,
			Following:    10,
			PublicRepos:  12,
			TotalCommits: 2410,
		},
	})

	err := WriteSnapshotsParquet(data, outputPath)
	require.NoError(t, err)

	rows, err := parquet.ReadFile[SnapshotRow](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01", rows[0].Date)
	assert.Equal(t, int64(105), rows[1].Stars)
}

func TestConvertLoadRunsEmpty(t *testing.T) {
	result := ConvertLoadRuns(nil)
	assert.Empty(t, result)
}

func TestConvertSnapshotsMapsEveryField(t *testing.T) {
	snap := schema.Snapshot{
		Date:              schema.NewCalDate(2024, time.March, 15),
		Stars:             7,
		Followers:         8,
		Following:         9,
		PublicRepos:       10,
		TotalCommits:      11,
		ContributionCount: 12,
	}

	rows := ConvertSnapshots([]schema.Snapshot{snap})
	require.Len(t, rows, 1)
	assert.Equal(t, SnapshotRow{
		Date:              "2024-03-15",
		Stars:             7,
		Followers:         8,
		Following:         9,
		PublicRepos:       10,
		TotalCommits:      11,
		ContributionCount: 12,
	}, rows[0])
}
