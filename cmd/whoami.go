package cmd

import (
	"github.com/averykuo/ghpulse/core"
	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/spf13/cobra"
)

// whoamiCmd shows the profile behind the configured token.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile associated with the configured token",
	Long: `Fetch and display the authenticated profile.

Useful for checking that a token is valid and points at the expected
account before loading snapshot data.

Examples:
  # Check the active account
  ghpulse whoami

  # Machine-readable profile
  ghpulse whoami --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWhoami(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot fetch profile", err)
		}
	},
}
