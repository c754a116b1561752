package schema

import "time"

// LoadRun is one recorded load of a snapshot range, as stored in the
// load history table.
type LoadRun struct {
	ID            int64       `json:"id"`
	IssuedAt      time.Time   `json:"issued_at"`
	CompletedAt   time.Time   `json:"completed_at"`
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	SnapshotCount int         `json:"snapshot_count"`
	Outcome       LoadOutcome `json:"outcome"`
}

// CacheStatus represents the status of the snapshot range cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
}

// HistoryStatus represents the status of the load history store.
type HistoryStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
}
