package cmd

import (
	"github.com/averykuo/ghpulse/core"
	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/spf13/cobra"
)

// languagesCmd shows the language composition of the latest snapshot.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Show language composition from the latest snapshot in range",
	Long: `Break down repository bytes by programming language.

The breakdown always comes from the most recent snapshot inside the
selected range, ordered by byte count (ties broken alphabetically).

Examples:
  # Current language mix
  ghpulse languages

  # Language mix as of a past date
  ghpulse languages --end 2024-06-30

  # Export shares for a report
  ghpulse languages --output csv --output-file languages.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLanguages(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run languages view", err)
		}
	},
}
