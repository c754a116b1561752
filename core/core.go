// Package core has core logic for snapshot aggregation, series building and
// view sessions.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/averykuo/ghpulse/internal/apiclient"
	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/internal/iocache"
	"github.com/averykuo/ghpulse/internal/outwriter"
	"github.com/averykuo/ghpulse/schema"
)

// ExecutorFunc defines the function signature for executing different view modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// newAnalyticsClient builds the remote client with the global range cache
// layered on.
func newAnalyticsClient(cfg *contract.Config) contract.AnalyticsClient {
	return newAnalyticsClientWith(cfg, iocache.Manager)
}

// newAnalyticsClientWith builds the remote client against an explicit store
// manager. A nil manager disables range caching.
func newAnalyticsClientWith(cfg *contract.Config, mgr contract.CacheManager) contract.AnalyticsClient {
	inner := apiclient.New(cfg.APIURL, cfg.Token)
	if mgr == nil {
		return inner
	}
	return apiclient.NewCachingClient(inner, cfg.APIURL, mgr)
}

// ExecuteDashboard loads the configured range and prints the metric change
// summary. With a refresh interval it keeps reloading until the context is
// canceled; each reload replaces the previous state wholesale.
// It serves as the main entry point for the 'dashboard' mode.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config) error {
	client := newAnalyticsClient(cfg)
	session := NewViewSession(client, nil, historyStore())
	defer func() { _ = session.Close() }()

	ow := outwriter.NewOutWriter()

	if err := loadAndPrintSummary(ctx, session, cfg, ow); err != nil {
		return err
	}
	if cfg.Refresh <= 0 {
		return nil
	}

	ticker := time.NewTicker(cfg.Refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := loadAndPrintSummary(ctx, session, cfg, ow); err != nil {
				return err
			}
		}
	}
}

// loadAndPrintSummary performs one load-and-print cycle for the dashboard.
func loadAndPrintSummary(ctx context.Context, session *ViewSession, cfg *contract.Config, ow *outwriter.OutWriter) error {
	start := time.Now()
	if err := session.Load(ctx, cfg.StartDate, cfg.EndDate); err != nil {
		return err
	}
	if session.EmptyResult() {
		outwriter.PrintEmptyState(cfg)
		return nil
	}
	if err := ow.WriteSummary(session.Changes(), cfg, time.Since(start)); err != nil {
		return err
	}

	// csv/json and file-bound callers get the summary only; machine-readable
	// series come from the trend and languages commands.
	if cfg.Output != schema.TextOut || cfg.OutputFile != "" {
		return nil
	}
	return printAllViews(session, cfg, ow)
}

// printAllViews prints every chart view under the summary, mirroring the
// one-page dashboard layout.
func printAllViews(session *ViewSession, cfg *contract.Config, ow *outwriter.OutWriter) error {
	for _, metric := range schema.SeriesMetrics {
		series, ok := session.Series(metric)
		if !ok {
			continue
		}
		fmt.Println()
		if err := ow.WriteSeries(series, cfg, cfg.Chart); err != nil {
			return err
		}
	}
	if series, ok := session.Series(schema.MetricLanguages); ok {
		fmt.Println()
		if err := ow.WriteLanguages(series, cfg); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteTrend loads the configured range and renders the selected metric
// view as a chart series.
// It serves as the main entry point for the 'trend' mode.
func ExecuteTrend(ctx context.Context, cfg *contract.Config) error {
	client := newAnalyticsClient(cfg)
	session := NewViewSession(client, outwriter.NewTermRenderer(cfg), historyStore())
	defer func() { _ = session.Close() }()

	// Select the view before loading so the winning load renders it directly.
	if err := session.SetMetric(cfg.Metric); err != nil {
		return err
	}
	if err := session.SetChartKind(cfg.Chart); err != nil {
		return err
	}

	if err := session.Load(ctx, cfg.StartDate, cfg.EndDate); err != nil {
		return err
	}
	if session.EmptyResult() {
		outwriter.PrintEmptyState(cfg)
	}
	return nil
}

// ExecuteLanguages renders the language composition of the latest snapshot
// in the configured range.
// It serves as the main entry point for the 'languages' mode.
func ExecuteLanguages(ctx context.Context, cfg *contract.Config) error {
	langCfg := cfg.Clone()
	langCfg.Metric = schema.MetricLanguages
	return ExecuteTrend(ctx, langCfg)
}

// ExecuteExport requests a server-rendered export of the configured range
// and writes it to disk.
// It serves as the main entry point for the 'export' mode.
func ExecuteExport(ctx context.Context, cfg *contract.Config) error {
	client := newAnalyticsClient(cfg)
	filename, err := RunExport(ctx, client, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s\n", cfg.ExportFormat, filename)
	return nil
}

// ExecuteWhoami prints the identity of the authenticated account. It doubles
// as a credential preflight: an invalid token surfaces here before any
// heavier load is attempted.
// It serves as the main entry point for the 'whoami' mode.
func ExecuteWhoami(ctx context.Context, cfg *contract.Config) error {
	client := newAnalyticsClient(cfg)
	profile, err := client.FetchProfile(ctx)
	if err != nil {
		return err
	}
	return outwriter.PrintProfile(profile, cfg)
}

// historyStore returns the global history store, or nil when tracking is
// disabled.
func historyStore() contract.HistoryStore {
	return iocache.Manager.GetHistoryStore()
}
