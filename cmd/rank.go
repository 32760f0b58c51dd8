package cmd

import (
	"github.com/sbcounts/aadv/core"
	"github.com/sbcounts/aadv/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd ranks count sites by combined volume.
var rankCmd = &cobra.Command{
	Use:   "rank [counts.json]",
	Short: "Show the busiest sites ranked by combined bike and pedestrian volume.",
	Long: `Rank count sites by total traffic volume across travel modes.

Each mode is expanded separately, then the per-mode estimates are averaged
across years and combined per site. A site missing one mode still ranks on
the volume it has.

Examples:
  # Top 10 busiest sites
  aadv rank counts.json --profile-dir ./profiles --limit 10

  # Rank on pedestrian volume only
  aadv rank counts.json --profile-dir ./profiles --mode ped`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRank(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot rank sites", err)
		}
	},
}
