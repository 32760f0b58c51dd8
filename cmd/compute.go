package cmd

import (
	"github.com/sbcounts/aadv/core"
	"github.com/sbcounts/aadv/internal/contract"
	"github.com/spf13/cobra"
)

// computeCmd runs the full count expansion pipeline.
var computeCmd = &cobra.Command{
	Use:   "compute [counts.json]",
	Short: "Compute annual average daily volume estimates from raw counts.",
	Long: `Expand raw hourly bicycle and pedestrian counts into annual average
daily volume (AADV) estimates, one per site per calendar year.

For each counted day the engine applies hourly expansion factors (when the
day is only partially covered), then day-of-week and monthly normalization
factors, and finally averages the daily estimates per site-year. When the
factor tables cannot be loaded the whole batch degrades to a raw-average
fallback so that every estimate in a run shares one method.

Examples:
  # Compute with locally stored factor tables
  aadv compute counts.json --profile-dir ./profiles

  # Fetch factor tables over HTTP, bikes only
  aadv compute counts.json --profile-url https://example.org/factors --mode bike

  # Export estimates for analytics
  aadv compute counts.json --profile-dir ./profiles --output parquet --output-file aadv.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompute(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot compute estimates", err)
		}
	},
}
