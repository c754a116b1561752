package cmd

import (
	"github.com/averykuo/ghpulse/core"
	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/spf13/cobra"
)

// trendCmd charts a single metric over the configured range.
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Chart a single metric across the selected range",
	Long: `Build a date-keyed series for one metric and render it as a chart.

Supported metric views: stars, repos, commits, contributions, followers.
The followers view plots followers and following together on a shared
date axis.

Chart kinds are a pure rendering choice; switching between line and bar
never changes the underlying values.

Examples:
  # Star count over the default range
  ghpulse trend --metric stars

  # Commits as a bar chart
  ghpulse trend --metric commits --chart bar

  # Follower growth over a quarter
  ghpulse trend --metric followers --start "3 months ago"

  # Machine-readable series
  ghpulse trend --metric repos --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrend(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run trend view", err)
		}
	},
}
