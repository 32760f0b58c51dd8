package outwriter

import (
	"os"

	"github.com/sbcounts/aadv/internal/contract"
	"golang.org/x/term"
)

// getMaxTableSiteWidth calculates the maximum width for site identifiers in
// table output based on terminal width and table configuration.
func getMaxTableSiteWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (year, estimate, method, label,
	// warnings) plus borders, separators and padding.
	baseWidth := 55

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable site column width
		return 12
	}
	if available > 40 {
		// Cap the site column to keep tables compact
		return 40
	}
	return available
}

// truncateSiteID shortens long site identifiers for table display.
func truncateSiteID(siteID string, maxWidth int) string {
	if len(siteID) <= maxWidth {
		return siteID
	}
	if maxWidth <= 3 {
		return siteID[:maxWidth]
	}
	return siteID[:maxWidth-3] + "..."
}
