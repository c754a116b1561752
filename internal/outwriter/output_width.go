package outwriter

import (
	"os"

	"github.com/averykuo/ghpulse/internal/contract"
	"golang.org/x/term"
)

// getMaxLabelWidth calculates the maximum width for series and language labels
// in table output based on terminal width.
func getMaxLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the value columns plus table borders and padding
	available := termWidth - 45
	if available < 12 {
		return 12
	}
	if available > 50 {
		return 50
	}
	return available
}

// getBarWidth calculates the width available for ASCII bars in bar charts.
func getBarWidth(cfg *contract.Config) int {
	width := getMaxLabelWidth(cfg)
	if width > 40 {
		return 40
	}
	return width
}
