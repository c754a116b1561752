package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/internal/parquet"
	"github.com/averykuo/ghpulse/schema"
)

// ExportFilename derives the timestamped name for an export file, e.g.
// ghpulse-export-20240131-150405.csv.
func ExportFilename(format schema.ExportFormat, at time.Time) string {
	return fmt.Sprintf("ghpulse-export-%s%s", at.Format("20060102-150405"), format.FileExtension())
}

// RunExport produces an export file for the configured range and writes it
// to disk. CSV and JSON come server-rendered; Parquet is built locally from
// the fetched range. The export always carries the full requested range of
// raw snapshot data, independent of whichever view is active.
// Returns the written filename.
func RunExport(ctx context.Context, client contract.AnalyticsClient, cfg *contract.Config) (string, error) {
	filename := cfg.OutputFile
	if filename == "" {
		filename = ExportFilename(cfg.ExportFormat, time.Now())
	}

	if cfg.ExportFormat == schema.ParquetExport {
		if err := runParquetExport(ctx, client, cfg, filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	data, err := client.ExportRange(ctx, cfg.ExportFormat, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return "", fmt.Errorf("export request failed: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", contract.ErrExportFailed, filename, err)
	}
	return filename, nil
}

// runParquetExport fetches the range and writes it as a Parquet file.
func runParquetExport(ctx context.Context, client contract.AnalyticsClient, cfg *contract.Config, filename string) error {
	snapshots, err := client.FetchSnapshots(ctx, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return fmt.Errorf("export fetch failed: %w", err)
	}
	if err := parquet.WriteSnapshotsParquet(parquet.ConvertSnapshots(snapshots), filename); err != nil {
		return fmt.Errorf("%w: writing %s: %v", contract.ErrExportFailed, filename, err)
	}
	return nil
}
