package cmd

import (
	"github.com/sbcounts/aadv/core"
	"github.com/sbcounts/aadv/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd compares mean AADV between two calendar years.
var compareCmd = &cobra.Command{
	Use:   "compare [counts.json]",
	Short: "Compare mean AADV between two calendar years over shared sites.",
	Long: `Compare annual estimates between a base year and a target year.

Only sites counted in BOTH years contribute to the year-over-year change,
so site turnover does not masquerade as a volume trend. Sites unique to
either year are listed separately.

Examples:
  # Year-over-year change from 2023 to 2024
  aadv compare counts.json --profile-dir ./profiles --base-year 2023 --target-year 2024

  # Machine-readable comparison
  aadv compare counts.json --profile-dir ./profiles --base-year 2023 --target-year 2024 --output json`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		return contract.ValidateCompareYears(cfg)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot compare years", err)
		}
	},
}
