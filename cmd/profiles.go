package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/internal/profilestore"
	"github.com/sbcounts/aadv/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// profilesSetup loads minimal configuration needed for profile operations.
// This is used by commands that need profile access without full shared setup.
func profilesSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.ProfileURL = viper.GetString("profile-url")
	cfg.ProfileDir = viper.GetString("profile-dir")
	if cfg.ProfileURL == "" && cfg.ProfileDir == "" {
		return errors.New("either --profile-url or --profile-dir must be set")
	}

	cfg.HourlyProfile = viper.GetString("hourly-profile")
	if cfg.HourlyProfile == "" {
		cfg.HourlyProfile = schema.DefaultProfileName
	}
	cfg.NormProfile = viper.GetString("norm-profile")
	if cfg.NormProfile == "" {
		cfg.NormProfile = schema.DefaultProfileName
	}

	cfg.ProfileTimeout = contract.DefaultTimeout
	if raw := viper.GetString("profile-timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid profile-timeout %q: %w", raw, err)
		}
		cfg.ProfileTimeout = d
	}

	return nil
}

// profilesSetupWrapper wraps profilesSetup to provide PreRunE for profile commands.
func profilesSetupWrapper(_ *cobra.Command, _ []string) error {
	return profilesSetup()
}

// profilesCmd focused on factor table inspection.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect the expansion and normalization factor tables",
	Long: `Inspect the factor tables the engine uses for count expansion.

Factor tables come from a local directory or an HTTP endpoint and hold:
- Hourly expansion factors per month, day type and hour
- Day-of-week normalization factors per month
- Monthly normalization factors

Subcommands:
  show - Fetch both tables and print per-month factor coverage

Examples:
  # Check what the configured tables cover
  aadv profiles show --profile-dir ./profiles`,
}

// profilesShowCmd prints per-month coverage of both factor tables.
var profilesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch both factor tables and print per-month coverage",
	Long: `Fetch the configured hourly and normalization factor tables and
summarize how many factors each month carries.

Use this to:
- Verify the profile source is reachable and well-formed
- Spot months or day types with missing hourly factors
- Confirm the named profiles exist in the documents

Examples:
  # Show coverage for the default profiles
  aadv profiles show --profile-dir ./profiles

  # Show coverage for a named profile
  aadv profiles show --profile-url https://example.org/factors --hourly-profile coastal`,
	PreRunE: profilesSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := profilestore.NewStore(newProfileSource())

		hourly, err := store.Hourly(rootCtx, cfg.HourlyProfile)
		if err != nil {
			contract.LogFatal("Failed to load hourly profile", err)
		}
		norm, err := store.Normalization(rootCtx, cfg.NormProfile)
		if err != nil {
			contract.LogFatal("Failed to load normalization profile", err)
		}

		printProfileCoverage(hourly, norm)
	},
}

// newProfileSource picks the profile transport from the loaded config.
func newProfileSource() contract.ProfileSource {
	if cfg.ProfileDir != "" {
		return profilestore.NewFileSource(cfg.ProfileDir)
	}
	return profilestore.NewHTTPSource(cfg.ProfileURL, cfg.ProfileTimeout)
}

// printProfileCoverage summarizes factor counts per month for both tables.
func printProfileCoverage(hourly *schema.ExpansionProfile, norm *schema.NormalizationProfile) {
	fmt.Printf("Hourly profile:        %s\n", hourly.Name)
	fmt.Printf("Normalization profile: %s\n\n", norm.Name)

	fmt.Println("Month  Hourly(weekday/saturday/sunday)  DayFactors  MonthFactor")
	for month := 1; month <= 12; month++ {
		counts := map[schema.DayType]int{}
		for dayType, hours := range hourly.Hours[month] {
			counts[dayType] = len(hours)
		}

		monthFactor := "-"
		if f, ok := norm.Months[month]; ok {
			monthFactor = fmt.Sprintf("%.4f", f)
		}

		fmt.Printf("%5d  %7d/%8d/%6d  %10d  %11s\n",
			month,
			counts[schema.WeekdayType],
			counts[schema.SaturdayType],
			counts[schema.SundayType],
			len(norm.Days[month]),
			monthFactor,
		)
	}
}
