// Package cmd defines the command-line interface for aadv.
package cmd

import (
	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the profiles subcommands to the parent profiles command
	profilesCmd.AddCommand(profilesShowCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("mode", string(schema.AllModes), "Travel mode: bike or ped or all")
	rootCmd.PersistentFlags().Float64("scale", schema.DefaultFallbackScale, "Daily scale factor applied to per-observation averages in fallback estimates")
	rootCmd.PersistentFlags().String("profile-url", "", "Base URL serving the hourly and normalization factor documents")
	rootCmd.PersistentFlags().String("profile-dir", "", "Local directory holding the hourly and normalization factor documents")
	rootCmd.PersistentFlags().String("hourly-profile", schema.DefaultProfileName, "Named hourly expansion profile to use")
	rootCmd.PersistentFlags().String("norm-profile", schema.DefaultProfileName, "Named day/month normalization profile to use")
	rootCmd.PersistentFlags().String("profile-timeout", "", "Timeout for profile fetches (e.g. 10s)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().Int("base-year", 0, "Baseline calendar year")
	compareCmd.Flags().Int("target-year", 0, "Calendar year to compare against the baseline")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
