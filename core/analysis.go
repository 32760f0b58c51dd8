package core

import (
	"context"
	"fmt"
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/internal/countsource"
	"github.com/sbcounts/aadv/internal/outwriter"
	"github.com/sbcounts/aadv/internal/profilestore"
	"github.com/sbcounts/aadv/schema"
)

// ExecuteCompute runs the full expansion pipeline over the input file and
// prints annualized site-year estimates. It serves as the main entry point
// for the 'compute' command.
func ExecuteCompute(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	logComputeHeader(cfg)

	validated, err := GetComputeResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.WriteComputeResults(validated, cfg, duration)
}

// ExecuteRank computes per-mode volumes and prints the busiest sites.
// It serves as the main entry point for the 'rank' command.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	logComputeHeader(cfg)

	ranked, err := GetRankResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.WriteRankingResults(ranked, cfg, duration)
}

// ExecuteCompare computes estimates for all years in the input and prints
// the year-over-year change between the configured base and target years.
// It serves as the main entry point for the 'compare' command.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	logComputeHeader(cfg)

	comparison, err := GetCompareResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.WriteComparisonResults(comparison, cfg, duration)
}

// GetComputeResults runs the expansion pipeline and returns validated
// results without printing. Shared by the CLI and MCP surfaces.
func GetComputeResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.ValidationOutput, error) {
	results, err := runComputeCore(ctx, cfg, cfg.Mode)
	if err != nil {
		return schema.ValidationOutput{}, err
	}
	validated := ValidateResults(results)
	recordRun(cfg, mgr, validated.Valid)
	return validated, nil
}

// GetRankResults computes per-mode volumes and returns the ranked sites
// without printing. Shared by the CLI and MCP surfaces.
func GetRankResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) ([]schema.SiteVolume, error) {
	rows, err := loadRows(ctx, cfg)
	if err != nil {
		return nil, err
	}
	profiles := loadProfiles(ctx, cfg)

	byMode := make(map[schema.TravelMode][]schema.AADVCalculationResult)
	for _, mode := range rankModes(cfg.Mode) {
		modeRows := countsource.FilterMode(rows, mode)
		if len(modeRows) == 0 {
			continue
		}
		results := profiles.aggregate(modeRows, cfg.Scale)
		validated := ValidateResults(results)
		recordRun(cfg, mgr, validated.Valid)
		byMode[mode] = validated.Valid
	}

	return RankSites(SiteVolumesFromResults(byMode), cfg.ResultLimit), nil
}

// GetCompareResults computes estimates for all years and returns the
// year-over-year comparison without printing. Shared by the CLI and MCP
// surfaces.
func GetCompareResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.YearComparison, error) {
	validated, err := GetComputeResults(ctx, cfg, mgr)
	if err != nil {
		return schema.YearComparison{}, err
	}

	records := make([]schema.SiteYear, 0, len(validated.Valid))
	for _, r := range validated.Valid {
		records = append(records, r.SiteYear)
	}
	return CompareYears(records, cfg.BaseYear, cfg.TargetYear), nil
}

// runComputeCore performs the common Ingestion, Profile Loading and
// Aggregation steps shared by the compute and compare commands.
func runComputeCore(ctx context.Context, cfg *contract.Config, mode schema.TravelMode) ([]schema.AADVCalculationResult, error) {
	rows, err := loadRows(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rows = countsource.FilterMode(rows, mode)

	profiles := loadProfiles(ctx, cfg)
	return profiles.aggregate(rows, cfg.Scale), nil
}

// loadRows reads and parses the raw count records from the input file.
func loadRows(ctx context.Context, cfg *contract.Config) ([]schema.RawCountRecord, error) {
	source := countsource.NewFileSource(cfg.InputPath)
	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read count input: %w", err)
	}
	return rows, nil
}

// profileSet carries whichever profiles loaded successfully. A nil profile
// pushes the whole batch through the raw-average fallback so that every
// result in a run shares one estimation method.
type profileSet struct {
	hourly *schema.ExpansionProfile
	norm   *schema.NormalizationProfile
}

// loadProfiles fetches the hourly and normalization factor tables. Load
// failures are warnings, not errors: the engine always degrades to the
// fallback estimate rather than refusing to produce output.
func loadProfiles(ctx context.Context, cfg *contract.Config) profileSet {
	store := profilestore.NewStore(newProfileSource(cfg))

	var set profileSet
	hourly, err := store.Hourly(ctx, cfg.HourlyProfile)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("hourly profile %q unavailable, using fallback estimates", cfg.HourlyProfile), err)
	} else {
		set.hourly = hourly
	}

	norm, err := store.Normalization(ctx, cfg.NormProfile)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("normalization profile %q unavailable, using fallback estimates", cfg.NormProfile), err)
	} else {
		set.norm = norm
	}
	return set
}

// newProfileSource picks the profile transport from config. A local
// directory wins over a URL when both are set.
func newProfileSource(cfg *contract.Config) contract.ProfileSource {
	if cfg.ProfileDir != "" {
		return profilestore.NewFileSource(cfg.ProfileDir)
	}
	return profilestore.NewHTTPSource(cfg.ProfileURL, cfg.ProfileTimeout)
}

// aggregate runs the expansion pipeline with whatever profiles are loaded.
func (p profileSet) aggregate(rows []schema.RawCountRecord, scale float64) []schema.AADVCalculationResult {
	return NewAggregator(p.hourly, p.norm, scale).Aggregate(rows)
}

// rankModes expands the configured travel mode into the per-mode passes
// that ranking needs.
func rankModes(mode schema.TravelMode) []schema.TravelMode {
	if mode == schema.AllModes {
		return []schema.TravelMode{schema.BikeMode, schema.PedMode}
	}
	return []schema.TravelMode{mode}
}

// recordRun persists one computation run to the history store. Tracking
// failures never disrupt the computation itself.
func recordRun(cfg *contract.Config, mgr contract.HistoryManager, results []schema.AADVCalculationResult) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(map[string]any{
		"input":   cfg.InputPath,
		"mode":    string(cfg.Mode),
		"scale":   cfg.Scale,
		"hourly":  cfg.HourlyProfile,
		"norm":    cfg.NormProfile,
		"output":  string(cfg.Output),
		"backend": string(cfg.HistoryBackend),
	})
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return
	}

	for _, r := range results {
		if err := store.RecordResult(runID, r); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to record result for site %s", r.SiteYear.SiteID), err)
		}
	}
	if err := store.EndRun(runID, len(results)); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}

// logComputeHeader prints a one-line banner describing the run.
func logComputeHeader(cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Printf("🚲 Computing AADV estimates for %s (mode: %s)\n", cfg.InputPath, cfg.Mode)
		return
	}
	fmt.Printf("Computing AADV estimates for %s (mode: %s)\n", cfg.InputPath, cfg.Mode)
}
