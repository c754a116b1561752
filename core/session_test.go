package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient is a hand-rolled client whose FetchSnapshots can be gated per
// call, which makes overlapping-load tests deterministic.
type stubClient struct {
	mu      sync.Mutex
	replies []stubReply
	calls   int
}

type stubReply struct {
	gate  chan struct{} // when non-nil, the fetch blocks until the gate closes
	snaps []schema.Snapshot
	err   error
}

func (c *stubClient) FetchSnapshots(ctx context.Context, start, end schema.CalDate) ([]schema.Snapshot, error) {
	c.mu.Lock()
	idx := c.calls
	c.calls++
	reply := c.replies[idx]
	c.mu.Unlock()

	if reply.gate != nil {
		<-reply.gate
	}
	return reply.snaps, reply.err
}

func (c *stubClient) FetchProfile(ctx context.Context) (schema.Profile, error) {
	return schema.Profile{}, nil
}

func (c *stubClient) ExportRange(ctx context.Context, format schema.ExportFormat, start, end schema.CalDate) ([]byte, error) {
	return nil, nil
}

func (c *stubClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// recordingRenderer tracks renders and enforces that the previous handle was
// closed before a replacement render happens.
type recordingRenderer struct {
	mu      sync.Mutex
	renders []schema.ChartSeries
	kinds   []schema.ChartKind
	handles []*recordingHandle
}

type recordingHandle struct {
	mu     sync.Mutex
	closed bool
}

func (h *recordingHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

func (h *recordingHandle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (r *recordingRenderer) RenderSeries(series schema.ChartSeries, kind schema.ChartKind) (contract.RenderHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, series)
	r.kinds = append(r.kinds, kind)
	handle := &recordingHandle{}
	r.handles = append(r.handles, handle)
	return handle, nil
}

func (r *recordingRenderer) renderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

// memoryHistory collects load runs in memory.
type memoryHistory struct {
	mu   sync.Mutex
	runs []schema.LoadRun
}

func (h *memoryHistory) RecordLoad(run schema.LoadRun) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, run)
	return int64(len(h.runs)), nil
}

func (h *memoryHistory) ListLoads(limit int) ([]schema.LoadRun, error) { return h.runs, nil }
func (h *memoryHistory) GetStatus() (schema.HistoryStatus, error)     { return schema.HistoryStatus{}, nil }
func (h *memoryHistory) Clear() error                                 { return nil }
func (h *memoryHistory) Close() error                                 { return nil }

func (h *memoryHistory) outcomes() []schema.LoadOutcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]schema.LoadOutcome, len(h.runs))
	for i, run := range h.runs {
		out[i] = run.Outcome
	}
	return out
}

func januaryRange() (schema.CalDate, schema.CalDate) {
	return schema.NewCalDate(2024, time.January, 1), schema.NewCalDate(2024, time.January, 31)
}

func TestSessionLoadApplies(t *testing.T) {
	client := &stubClient{replies: []stubReply{{snaps: rangeSnapshots()}}}
	history := &memoryHistory{}
	session := NewViewSession(client, nil, history)
	defer func() { _ = session.Close() }()

	start, end := januaryRange()
	require.NoError(t, session.Load(context.Background(), start, end))

	assert.True(t, session.Loaded())
	assert.False(t, session.EmptyResult())
	assert.Len(t, session.Snapshots(), 2)
	assert.Len(t, session.Changes(), len(schema.SummaryMetrics))

	series, ok := session.Series(schema.MetricStars)
	require.True(t, ok)
	assert.Equal(t, []float64{100, 150}, series.Values[0].Values)

	gotStart, gotEnd := session.Range()
	assert.Equal(t, start, gotStart)
	assert.Equal(t, end, gotEnd)

	assert.Equal(t, []schema.LoadOutcome{schema.LoadApplied}, history.outcomes())
}

func TestSessionEmptyResultIsValidState(t *testing.T) {
	client := &stubClient{replies: []stubReply{{snaps: []schema.Snapshot{}}}}
	history := &memoryHistory{}
	renderer := &recordingRenderer{}
	session := NewViewSession(client, renderer, history)
	defer func() { _ = session.Close() }()

	start, end := januaryRange()
	require.NoError(t, session.Load(context.Background(), start, end), "empty result is not an error")

	assert.True(t, session.Loaded())
	assert.True(t, session.EmptyResult())
	assert.Empty(t, session.Changes())
	assert.Equal(t, []schema.LoadOutcome{schema.LoadEmpty}, history.outcomes())

	// An empty load never draws a zero-length chart; no series exists for
	// any metric view and switching views stays render-free.
	assert.Zero(t, renderer.renderCount())
	_, ok := session.Series(schema.MetricStars)
	assert.False(t, ok)
	require.NoError(t, session.SetMetric(schema.MetricFollowers))
	assert.Zero(t, renderer.renderCount())
}

func TestSessionFailedLoadKeepsPriorState(t *testing.T) {
	client := &stubClient{replies: []stubReply{
		{snaps: rangeSnapshots()},
		{err: contract.ErrUnavailable},
	}}
	history := &memoryHistory{}
	session := NewViewSession(client, nil, history)
	defer func() { _ = session.Close() }()

	start, end := januaryRange()
	require.NoError(t, session.Load(context.Background(), start, end))

	err := session.Load(context.Background(), start, end)
	assert.ErrorIs(t, err, contract.ErrUnavailable)

	// The last good state survives the failure.
	assert.True(t, session.Loaded())
	assert.Len(t, session.Snapshots(), 2)
	assert.Equal(t, []schema.LoadOutcome{schema.LoadApplied, schema.LoadFailed}, history.outcomes())
}

func TestSessionLastIssuedWins(t *testing.T) {
	gate := make(chan struct{})
	older := []schema.Snapshot{{Date: schema.NewCalDate(2024, time.January, 1), Stars: 1}}
	newer := []schema.Snapshot{{Date: schema.NewCalDate(2024, time.February, 1), Stars: 2}}

	client := &stubClient{replies: []stubReply{
		{gate: gate, snaps: older}, // first load blocks until released
		{snaps: newer},
	}}
	history := &memoryHistory{}
	session := NewViewSession(client, nil, history)
	defer func() { _ = session.Close() }()

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- session.Load(context.Background(),
			schema.NewCalDate(2024, time.January, 1), schema.NewCalDate(2024, time.January, 31))
	}()

	// Wait for the first fetch to be in flight before issuing the second.
	require.Eventually(t, func() bool { return client.callCount() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, session.Load(context.Background(),
		schema.NewCalDate(2024, time.February, 1), schema.NewCalDate(2024, time.February, 29)))

	// Release the older load; it must be discarded even though it finishes last.
	close(gate)
	err := <-firstDone
	assert.ErrorIs(t, err, contract.ErrSuperseded)

	snaps := session.Snapshots()
	require.Len(t, snaps, 1)
	assert.Equal(t, 2, snaps[0].Stars, "newer load's data must stay applied")

	outcomes := history.outcomes()
	require.Len(t, outcomes, 2)
	assert.Equal(t, schema.LoadApplied, outcomes[0])
	assert.Equal(t, schema.LoadSuperseded, outcomes[1])
}

func TestSessionRendersActiveViewOnLoad(t *testing.T) {
	client := &stubClient{replies: []stubReply{{snaps: rangeSnapshots()}}}
	renderer := &recordingRenderer{}
	session := NewViewSession(client, renderer, nil)
	defer func() { _ = session.Close() }()

	require.NoError(t, session.SetMetric(schema.MetricCommits))
	assert.Equal(t, 0, renderer.renderCount(), "no render before data is loaded")

	start, end := januaryRange()
	require.NoError(t, session.Load(context.Background(), start, end))

	require.Equal(t, 1, renderer.renderCount())
	assert.Equal(t, schema.MetricCommits, renderer.renders[0].Metric)
}

func TestSessionClosesPreviousHandleBeforeReplacement(t *testing.T) {
	client := &stubClient{replies: []stubReply{{snaps: rangeSnapshots()}}}
	renderer := &recordingRenderer{}
	session := NewViewSession(client, renderer, nil)
	defer func() { _ = session.Close() }()

	start, end := januaryRange()
	require.NoError(t, session.Load(context.Background(), start, end))
	require.NoError(t, session.SetMetric(schema.MetricFollowers))

	require.Len(t, renderer.handles, 2)
	assert.True(t, renderer.handles[0].isClosed(), "previous render must be closed")
	assert.False(t, renderer.handles[1].isClosed(), "replacement render stays live")
}

func TestSessionSetChartKindRerendersWithoutFetch(t *testing.T) {
	client := &stubClient{replies: []stubReply{{snaps: rangeSnapshots()}}}
	renderer := &recordingRenderer{}
	session := NewViewSession(client, renderer, nil)
	defer func() { _ = session.Close() }()

	start, end := januaryRange()
	require.NoError(t, session.Load(context.Background(), start, end))
	require.NoError(t, session.SetChartKind(schema.BarChart))

	assert.Equal(t, 1, client.callCount(), "chart kind change must not refetch")
	require.Equal(t, 2, renderer.renderCount())
	assert.Equal(t, schema.LineChart, renderer.kinds[0])
	assert.Equal(t, schema.BarChart, renderer.kinds[1])

	// Same values in both renders: the kind is presentation only.
	assert.Equal(t, renderer.renders[0].Values, renderer.renders[1].Values)
}

func TestSessionLanguagesEmptySurfacesError(t *testing.T) {
	snapshots := rangeSnapshots()
	snapshots[len(snapshots)-1].LanguageStats = nil
	client := &stubClient{replies: []stubReply{{snaps: snapshots}}}
	renderer := &recordingRenderer{}
	session := NewViewSession(client, renderer, nil)
	defer func() { _ = session.Close() }()

	require.NoError(t, session.SetMetric(schema.MetricLanguages))

	start, end := januaryRange()
	err := session.Load(context.Background(), start, end)
	assert.ErrorIs(t, err, contract.ErrEmptyLanguages)
	assert.Equal(t, 0, renderer.renderCount())
}

func TestSessionCloseReleasesHandle(t *testing.T) {
	client := &stubClient{replies: []stubReply{{snaps: rangeSnapshots()}}}
	renderer := &recordingRenderer{}
	session := NewViewSession(client, renderer, nil)

	start, end := januaryRange()
	require.NoError(t, session.Load(context.Background(), start, end))

	require.NoError(t, session.Close())
	require.Len(t, renderer.handles, 1)
	assert.True(t, renderer.handles[0].isClosed())

	// Closed sessions reject further loads.
	err := session.Load(context.Background(), start, end)
	assert.Error(t, err)

	// Double close is safe.
	assert.NoError(t, session.Close())
}

func TestSessionHistoryFailureDoesNotFailLoad(t *testing.T) {
	client := &stubClient{replies: []stubReply{{snaps: rangeSnapshots()}}}
	session := NewViewSession(client, nil, &failingHistory{})
	defer func() { _ = session.Close() }()

	start, end := januaryRange()
	assert.NoError(t, session.Load(context.Background(), start, end))
	assert.True(t, session.Loaded())
}

type failingHistory struct{}

func (h *failingHistory) RecordLoad(run schema.LoadRun) (int64, error) {
	return 0, errors.New("history down")
}
func (h *failingHistory) ListLoads(limit int) ([]schema.LoadRun, error) { return nil, nil }
func (h *failingHistory) GetStatus() (schema.HistoryStatus, error)     { return schema.HistoryStatus{}, nil }
func (h *failingHistory) Clear() error                                 { return nil }
func (h *failingHistory) Close() error                                 { return nil }
