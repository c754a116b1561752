// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/averykuo/ghpulse/schema"
)

// AnalyticsClient defines the remote analytics API operations used by the
// core pipeline. This allows the pipeline to be tested without a live backend.
type AnalyticsClient interface {
	// FetchSnapshots returns the ordered snapshot sequence for the
	// authenticated account within the inclusive [start, end] range.
	// A zero-length result is a valid success, distinct from failure.
	FetchSnapshots(ctx context.Context, start, end schema.CalDate) ([]schema.Snapshot, error)

	// FetchProfile returns the identity of the authenticated account.
	FetchProfile(ctx context.Context) (schema.Profile, error)

	// ExportRange requests a server-rendered export file for the range.
	ExportRange(ctx context.Context, format schema.ExportFormat, start, end schema.CalDate) ([]byte, error)
}

// Renderer is the presentation sink for chart series. Rendering internals
// are outside the pipeline; the pipeline only creates and closes renders.
type Renderer interface {
	// RenderSeries draws a chart series and returns a handle to the live
	// render. The caller must close a view's previous handle before
	// creating its replacement.
	RenderSeries(series schema.ChartSeries, kind schema.ChartKind) (RenderHandle, error)
}

// RenderHandle is a live rendered chart owned by the rendering backend.
type RenderHandle interface {
	Close() error
}

// CacheManager defines the interface for managing local stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetRangeStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for snapshot range cache storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Clear() error
	Close() error
}

// HistoryStore defines the interface for recording load runs.
type HistoryStore interface {
	// RecordLoad stores one completed load run and returns its unique ID.
	RecordLoad(run schema.LoadRun) (int64, error)

	// ListLoads returns the most recent load runs, newest first.
	ListLoads(limit int) ([]schema.LoadRun, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded load runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
