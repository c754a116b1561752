package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// ViewSession owns the loaded snapshot state for one interactive view. All
// reads and derived views go through the session, never through globals, so
// two sessions can load different ranges side by side.
//
// Concurrent loads follow a last-issued-wins policy: every Load call gets a
// monotonically increasing sequence number, and a finishing load only applies
// when its number is still the latest. A superseded load's data is discarded
// wholesale, so the applied state always comes from exactly one load.
type ViewSession struct {
	mu       sync.Mutex
	client   contract.AnalyticsClient
	renderer contract.Renderer
	history  contract.HistoryStore // may be nil when tracking is disabled

	issued uint64 // sequence number of the most recently issued load
	closed bool

	// State below is replaced wholesale by the winning load.
	loaded    bool
	snapshots []schema.Snapshot
	changes   []schema.MetricChange
	series    map[schema.MetricKey]schema.ChartSeries
	start     schema.CalDate
	end       schema.CalDate

	activeMetric schema.MetricKey
	chartKind    schema.ChartKind
	handle       contract.RenderHandle // live render of the active view
}

// NewViewSession creates a session bound to a client and renderer.
// history may be nil to disable load run tracking.
func NewViewSession(client contract.AnalyticsClient, renderer contract.Renderer, history contract.HistoryStore) *ViewSession {
	return &ViewSession{
		client:       client,
		renderer:     renderer,
		history:      history,
		activeMetric: schema.MetricStars,
		chartKind:    schema.LineChart,
	}
}

// Load fetches the range and applies it unless a newer load was issued in the
// meantime. It blocks until the fetch completes; issue concurrent loads from
// separate goroutines to exercise the supersede policy.
//
// Returns ErrSuperseded when a newer load won, wrapped load errors when the
// fetch failed, and nil when the result (empty included) was applied.
func (s *ViewSession) Load(ctx context.Context, start, end schema.CalDate) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("session is closed")
	}
	s.issued++
	id := s.issued
	s.mu.Unlock()

	issuedAt := time.Now()
	snapshots, err := s.client.FetchSnapshots(ctx, start, end)
	return s.complete(id, issuedAt, start, end, snapshots, err)
}

// complete applies a finished load if it is still the latest issued one.
func (s *ViewSession) complete(id uint64, issuedAt time.Time, start, end schema.CalDate, snapshots []schema.Snapshot, loadErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.issued {
		// A newer load was issued; this result is stale regardless of
		// whether it fetched more data or finished faster.
		s.record(issuedAt, start, end, len(snapshots), schema.LoadSuperseded)
		return fmt.Errorf("load %d: %w", id, contract.ErrSuperseded)
	}

	if loadErr != nil {
		// The failed load still owns the slot; prior data stays applied
		// so the view keeps showing the last good state.
		s.record(issuedAt, start, end, 0, schema.LoadFailed)
		return fmt.Errorf("load %d: %w", id, loadErr)
	}

	if snapshots == nil {
		snapshots = []schema.Snapshot{}
	}

	// Replace state wholesale; never merge results from different loads.
	s.loaded = true
	s.snapshots = snapshots
	s.start = start
	s.end = end

	if len(snapshots) == 0 {
		// Empty is a valid state. Aggregation, series building and
		// rendering are all skipped; the caller presents the
		// empty-state message instead of a zero-length chart.
		s.changes = nil
		s.series = nil
		s.record(issuedAt, start, end, 0, schema.LoadEmpty)
		return nil
	}

	s.changes = BuildMetricChanges(snapshots)
	s.series = BuildAllSeries(snapshots)
	s.record(issuedAt, start, end, len(snapshots), schema.LoadApplied)

	return s.renderActiveLocked()
}

// record persists a load run when history tracking is enabled.
func (s *ViewSession) record(issuedAt time.Time, start, end schema.CalDate, count int, outcome schema.LoadOutcome) {
	if s.history == nil {
		return
	}
	_, err := s.history.RecordLoad(schema.LoadRun{
		IssuedAt:      issuedAt,
		CompletedAt:   time.Now(),
		StartDate:     start.String(),
		EndDate:       end.String(),
		SnapshotCount: count,
		Outcome:       outcome,
	})
	if err != nil {
		contract.LogWarn("Load history write failed", err)
	}
}

// renderActiveLocked redraws the active view. The previous render handle is
// closed before its replacement is created. Caller must hold the mutex.
func (s *ViewSession) renderActiveLocked() error {
	if s.renderer == nil || !s.loaded || len(s.snapshots) == 0 {
		return nil
	}

	series, ok := s.series[s.activeMetric]
	if !ok {
		// Language view with no data in the latest snapshot.
		if s.activeMetric == schema.MetricLanguages {
			return contract.ErrEmptyLanguages
		}
		return nil
	}

	if s.handle != nil {
		if err := s.handle.Close(); err != nil {
			return fmt.Errorf("failed to close previous render: %w", err)
		}
		s.handle = nil
	}

	handle, err := s.renderer.RenderSeries(series, s.chartKind)
	if err != nil {
		return err
	}
	s.handle = handle
	return nil
}

// SetMetric switches the active view and re-renders it from the already
// loaded data. No fetch happens.
func (s *ViewSession) SetMetric(metric schema.MetricKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeMetric = metric
	return s.renderActiveLocked()
}

// SetChartKind changes the rendering hint and re-renders the active view.
// Series values are untouched; the kind only affects presentation.
func (s *ViewSession) SetChartKind(kind schema.ChartKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chartKind = kind
	return s.renderActiveLocked()
}

// Loaded reports whether any load has been applied.
func (s *ViewSession) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// EmptyResult reports whether the applied load returned zero snapshots.
// Empty is a valid state, distinct from never-loaded and from failure.
func (s *ViewSession) EmptyResult() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && len(s.snapshots) == 0
}

// Snapshots returns the applied snapshot sequence.
func (s *ViewSession) Snapshots() []schema.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots
}

// Changes returns the applied metric change summaries.
func (s *ViewSession) Changes() []schema.MetricChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changes
}

// Series returns the applied series for a metric view.
func (s *ViewSession) Series(metric schema.MetricKey) (schema.ChartSeries, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	series, ok := s.series[metric]
	return series, ok
}

// Range returns the applied load's date bounds.
func (s *ViewSession) Range() (schema.CalDate, schema.CalDate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start, s.end
}

// Close releases the live render and marks the session unusable.
func (s *ViewSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.handle != nil {
		err := s.handle.Close()
		s.handle = nil
		return err
	}
	return nil
}
