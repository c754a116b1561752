package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// loadRunsTable is the name of the table for load history tracking.
const loadRunsTable = "ghpulse_load_runs"

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
// The table schema is managed by the embedded migrations; opening the store
// migrates to the latest version.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	db, err := openBackendDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	store := &HistoryStoreImpl{db: db, backend: backend}
	if db == nil {
		// No-op store for disabled tracking
		return store, nil
	}

	if err := migrateUp(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return store, nil
}

// placeholder returns the n-th parameter placeholder for the backend.
func (hs *HistoryStoreImpl) placeholder(n int) string {
	if hs.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// RecordLoad stores one completed load run and returns its unique ID.
func (hs *HistoryStoreImpl) RecordLoad(run schema.LoadRun) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	// Timestamps are stored as RFC3339 text so that scans behave the same
	// across sqlite, mysql and postgresql.
	issuedAt := run.IssuedAt.UTC().Format(time.RFC3339)
	completedAt := run.CompletedAt.UTC().Format(time.RFC3339)

	if hs.backend == schema.PostgreSQLBackend {
		query := fmt.Sprintf(`INSERT INTO %s
			(issued_at, completed_at, start_date, end_date, snapshot_count, outcome)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`, loadRunsTable)
		var id int64
		err := hs.db.QueryRow(query,
			issuedAt, completedAt, run.StartDate, run.EndDate,
			run.SnapshotCount, string(run.Outcome)).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to record load run: %w", err)
		}
		return id, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s
		(issued_at, completed_at, start_date, end_date, snapshot_count, outcome)
		VALUES (?, ?, ?, ?, ?, ?)`, loadRunsTable)
	result, err := hs.db.Exec(query,
		issuedAt, completedAt, run.StartDate, run.EndDate,
		run.SnapshotCount, string(run.Outcome))
	if err != nil {
		return 0, fmt.Errorf("failed to record load run: %w", err)
	}
	return result.LastInsertId()
}

// ListLoads returns the most recent load runs, newest first.
func (hs *HistoryStoreImpl) ListLoads(limit int) ([]schema.LoadRun, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return []schema.LoadRun{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT id, issued_at, completed_at, start_date, end_date, snapshot_count, outcome
		FROM %s ORDER BY id DESC LIMIT %s`, loadRunsTable, hs.placeholder(1))
	rows, err := hs.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list load runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.LoadRun
	for rows.Next() {
		var run schema.LoadRun
		var issuedAt, completedAt, outcome string
		if err := rows.Scan(&run.ID, &issuedAt, &completedAt,
			&run.StartDate, &run.EndDate, &run.SnapshotCount, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan load run: %w", err)
		}
		run.IssuedAt, _ = time.Parse(time.RFC3339, issuedAt)
		run.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		run.Outcome = schema.LoadOutcome(outcome)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Clear removes all recorded load runs.
func (hs *HistoryStoreImpl) Clear() error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}
	_, err := hs.db.Exec(fmt.Sprintf("DELETE FROM %s", loadRunsTable))
	return err
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", loadRunsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns == 0 {
		return status, nil
	}

	var lastID int64
	var lastRun, oldestRun string
	row = hs.db.QueryRow(fmt.Sprintf(
		"SELECT MAX(id), MAX(completed_at), MIN(completed_at) FROM %s", loadRunsTable))
	if err := row.Scan(&lastID, &lastRun, &oldestRun); err != nil {
		return status, fmt.Errorf("failed to get run times: %w", err)
	}
	status.LastRunID = lastID
	status.LastRunTime, _ = time.Parse(time.RFC3339, lastRun)
	status.OldestRunTime, _ = time.Parse(time.RFC3339, oldestRun)

	return status, nil
}
