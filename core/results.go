package core

import (
	"context"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// GetMetricSummary loads the configured range and returns the metric change
// summaries without printing. Used by programmatic consumers such as the
// MCP server, which supply their own store manager.
func GetMetricSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.MetricChange, error) {
	client := newAnalyticsClientWith(cfg, mgr)
	session := NewViewSession(client, nil, managedHistoryStore(mgr))
	defer func() { _ = session.Close() }()

	if err := session.Load(ctx, cfg.StartDate, cfg.EndDate); err != nil {
		return nil, err
	}
	return session.Changes(), nil
}

// GetSeriesResult loads the configured range and returns the chart series for
// one metric view without printing.
func GetSeriesResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, metric schema.MetricKey) (schema.ChartSeries, error) {
	client := newAnalyticsClientWith(cfg, mgr)
	session := NewViewSession(client, nil, managedHistoryStore(mgr))
	defer func() { _ = session.Close() }()

	if err := session.Load(ctx, cfg.StartDate, cfg.EndDate); err != nil {
		return schema.ChartSeries{}, err
	}
	return BuildSeries(metric, session.Snapshots())
}

// managedHistoryStore returns the manager's history store, or nil when no
// manager is supplied.
func managedHistoryStore(mgr contract.CacheManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}
