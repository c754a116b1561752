package iocache

import (
	"errors"
	"fmt"

	"github.com/averykuo/ghpulse/internal/parquet"
)

// ExecuteHistoryExport exports the recorded load history to a Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history tracking is not enabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no load history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total load runs: %d\n", status.TotalRuns)

	runs, err := store.ListLoads(status.TotalRuns)
	if err != nil {
		return fmt.Errorf("failed to retrieve load runs: %w", err)
	}

	records := parquet.ConvertLoadRuns(runs)

	loadRunsFile := outputFile + ".load_runs.parquet"
	if err := parquet.WriteLoadRunsParquet(records, loadRunsFile); err != nil {
		return fmt.Errorf("failed to write load runs: %w", err)
	}
	fmt.Printf("Exported %d load runs to: %s\n", len(records), loadRunsFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
