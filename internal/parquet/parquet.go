// Package parquet provides data structures and functions for exporting
// ghpulse data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/averykuo/ghpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// LoadRun represents a single snapshot load run with metadata.
// This struct maps to the ghpulse_load_runs database table.
type LoadRun struct {
	// RunID is the unique identifier for this load run
	RunID int64 `parquet:"run_id,snappy"`

	// IssuedAt is when the load was issued
	IssuedAt time.Time `parquet:"issued_at,snappy"`

	// CompletedAt is when the load finished
	CompletedAt time.Time `parquet:"completed_at,snappy"`

	// StartDate is the inclusive lower bound of the requested range
	StartDate string `parquet:"start_date,snappy"`

	// EndDate is the inclusive upper bound of the requested range
	EndDate string `parquet:"end_date,snappy"`

	// SnapshotCount is the number of snapshots returned by the load
	SnapshotCount int32 `parquet:"snapshot_count,snappy"`

	// Outcome is the terminal state of the load (applied, empty, superseded, failed)
	Outcome string `parquet:"outcome,snappy"`
}

// SnapshotRow represents one daily snapshot flattened for Parquet export.
type SnapshotRow struct {
	// Date is the calendar day of the snapshot in YYYY-MM-DD form
	Date string `parquet:"date,snappy"`

	// Stars is the cumulative star count across public repositories
	Stars int64 `parquet:"stars,snappy"`

	// Followers is the follower count on that day
	Followers int64 `parquet:"followers,snappy"`

	// Following is the following count on that day
	Following int64 `parquet:"following,snappy"`

	// PublicRepos is the public repository count on that day
	PublicRepos int64 `parquet:"public_repos,snappy"`

	// TotalCommits is the cumulative commit count on that day
	TotalCommits int64 `parquet:"total_commits,snappy"`

	// ContributionCount is the contribution count on that day
	ContributionCount int64 `parquet:"contribution_count,snappy"`
}

// WriteLoadRunsParquet writes a slice of LoadRun structs to a Parquet file.
func WriteLoadRunsParquet(data []LoadRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the LoadRun struct tags
	writer := parquet.NewGenericWriter[LoadRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSnapshotsParquet writes a slice of SnapshotRow structs to a Parquet file.
func WriteSnapshotsParquet(data []SnapshotRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the SnapshotRow struct tags
	writer := parquet.NewGenericWriter[SnapshotRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertLoadRuns converts schema.LoadRun to LoadRun for Parquet export.
func ConvertLoadRuns(runs []schema.LoadRun) []LoadRun {
	result := make([]LoadRun, len(runs))
	for i, run := range runs {
		result[i] = LoadRun{
			RunID:         run.ID,
			IssuedAt:      run.IssuedAt,
			CompletedAt:   run.CompletedAt,
			StartDate:     run.StartDate,
			EndDate:       run.EndDate,
			SnapshotCount: int32(run.SnapshotCount),
			Outcome:       string(run.Outcome),
		}
	}
	return result
}

// ConvertSnapshots converts schema.Snapshot to SnapshotRow for Parquet export.
func ConvertSnapshots(snapshots []schema.Snapshot) []SnapshotRow {
	result := make([]SnapshotRow, len(snapshots))
	for i, snap := range snapshots {
		result[i] = SnapshotRow{
			Date:              snap.Date.String(),
			Stars:             int64(snap.Stars),
			Followers:         int64(snap.Followers),
			Following:         int64(snap.Following),
			PublicRepos:       int64(snap.PublicRepos),
			TotalCommits:      int64(snap.TotalCommits),
			ContributionCount: int64(snap.ContributionCount),
		}
	}
	return result
}
