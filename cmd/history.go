package cmd

import (
	"fmt"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/internal/iocache"
	"github.com/averykuo/ghpulse/internal/outwriter"
	"github.com/averykuo/ghpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by list and export commands)
	outputFile := viper.GetString("output-file")
	output := viper.GetString("output")

	// Initialize stores with the loaded config (no range caching for history commands)
	if err := iocache.InitCaching("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = outputFile
	cfg.Output = schema.OutputMode(output)

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on load history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by view commands. This avoids date range parsing
// and API configuration for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage load run history and exports",
	Long: `Manage the historical record of snapshot loads.

When enabled, ghpulse records every load attempt, storing:
- When the load was issued and completed
- The requested date range
- How many snapshots came back
- The outcome (applied, empty, superseded, failed)

This enables auditing load behavior and exporting the record for analytics.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show load history statistics
  list    - Show recent load runs
  export  - Export load runs to Parquet for analytics
  clear   - Remove all load history
  migrate - Run database schema migrations

Examples:
  # Check history status
  ghpulse history status

  # Export for analysis in pandas/DuckDB
  ghpulse history export --output-file history-data.parquet`,
}

// historyClearCmd clears the load history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded load runs",
	Long: `Delete all stored load run records.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  ghpulse history export --output-file backup.parquet
  ghpulse history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear load history", err)
		}
		fmt.Println("Load history cleared successfully.")
	},
}

// historyStatusCmd shows load history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display load history statistics and connection details",
	Long: `Show detailed information about recorded load runs.

Displays:
- Backend type and connection status
- Total number of recorded load runs
- Last and oldest run timestamps

Examples:
  # Check load history status
  ghpulse history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)
	},
}

// historyListCmd lists recent load runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent load runs, newest first",
	Long: `List recorded load runs with their range, snapshot count, and outcome.

Examples:
  # Show the most recent runs
  ghpulse history list

  # Show more runs as JSON
  ghpulse history list --limit 100 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := iocache.Manager.GetHistoryStore().ListLoads(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list load runs", err)
		}
		if err := outwriter.PrintLoadRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to print load runs", err)
		}
	},
}

// historyExportCmd exports load runs to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export load runs to Parquet for BI tools and analytics",
	Long: `Export all recorded load runs to Parquet format for analytics tools.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  ghpulse history export --output-file ghpulse-history.parquet

  # Use with DuckDB for analysis
  ghpulse history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.load_runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export load history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the load history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  ghpulse history migrate

  # Migrate to specific version
  ghpulse history migrate --target-version 1

  # Rollback to initial state
  ghpulse history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
