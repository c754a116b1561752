package cmd

import (
	"github.com/averykuo/ghpulse/core"
	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/spf13/cobra"
)

// dashboardCmd summarizes metric movement over the configured range.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show how profile metrics moved over the selected range.",
	Long: `Load daily profile snapshots and summarize each headline metric.

For every metric (stars, followers, repositories, commits), the summary shows
the first and last value in the range, the absolute delta, the percent change,
and a trend direction.

With --refresh, the dashboard stays up and reloads on an interval, always
reflecting the most recently requested range. A reload that fails keeps the
previous summary on screen.

Examples:
  # Summarize the default 30-day range
  ghpulse dashboard

  # Summarize a specific window
  ghpulse dashboard --start 2024-01-01 --end 2024-03-31

  # Live mode, reloading every minute
  ghpulse dashboard --refresh 1m

  # Export the summary as CSV
  ghpulse dashboard --output csv --output-file summary.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run dashboard", err)
		}
	},
}
