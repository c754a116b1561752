package cmd

import (
	"github.com/averykuo/ghpulse/core"
	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd downloads a server-rendered export of the raw snapshot data.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download raw snapshot data for the selected range",
	Long: `Request a server-rendered export of every snapshot in the range.

The export always contains the full raw data for the range, independent of
whichever view or metric is currently selected. Without --output-file, the
file name is derived from the current time, for example
ghpulse-export-20240115-093055.csv.

CSV and JSON exports are rendered by the server. Parquet exports are built
locally from the fetched range for use with DuckDB, Spark, or pandas.

Examples:
  # CSV export of the default range
  ghpulse export

  # JSON export of a quarter
  ghpulse export --format json --start 2024-01-01 --end 2024-03-31

  # Parquet export for analytics tools
  ghpulse export --format parquet

  # Write to a specific file
  ghpulse export --output-file q1-snapshots.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run export", err)
		}
	},
}
