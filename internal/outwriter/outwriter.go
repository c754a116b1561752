// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints metric change summaries using the configured output format.
func (ow *OutWriter) WriteSummary(changes []schema.MetricChange, cfg *contract.Config, duration time.Duration) error {
	return PrintSummaryResults(changes, cfg, duration)
}

// WriteSeries prints a chart series using the configured output format.
func (ow *OutWriter) WriteSeries(series schema.ChartSeries, cfg *contract.Config, kind schema.ChartKind) error {
	return PrintSeriesResults(series, cfg, kind)
}

// WriteLanguages prints the language composition using the configured output format.
func (ow *OutWriter) WriteLanguages(series schema.ChartSeries, cfg *contract.Config) error {
	return PrintLanguageResults(series, cfg)
}

// WriteProfile prints the authenticated account identity.
func (ow *OutWriter) WriteProfile(profile schema.Profile, cfg *contract.Config) error {
	return PrintProfile(profile, cfg)
}

// WriteLoadHistory prints recorded load runs using the configured output format.
func (ow *OutWriter) WriteLoadHistory(runs []schema.LoadRun, cfg *contract.Config) error {
	return PrintLoadRuns(runs, cfg)
}
