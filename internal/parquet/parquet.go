// Package parquet provides data structures and functions for exporting
// AADV run history and results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/sbcounts/aadv/schema"
)

// Run represents a single computation run with metadata. Maps to the
// aadv_runs history table.
type Run struct {
	RunID       int64      `parquet:"run_id,snappy"`
	StartedAt   time.Time  `parquet:"started_at,snappy"`
	EndedAt     *time.Time `parquet:"ended_at,optional,snappy"`
	ResultCount int32      `parquet:"result_count,snappy"`
	Params      *string    `parquet:"params,optional,snappy"`
}

// SiteYearResult represents one persisted site-year estimate. Maps to the
// aadv_site_years history table.
type SiteYearResult struct {
	RunID          int64     `parquet:"run_id,snappy"`
	SiteID         string    `parquet:"site_id,snappy"`
	Year           int32     `parquet:"year,snappy"`
	AADV           float64   `parquet:"aadv,snappy"`
	Method         string    `parquet:"method,snappy"`
	WarningCount   int32     `parquet:"warning_count,snappy"`
	HourlyFactors  int32     `parquet:"hourly_factors,snappy"`
	DailyFactors   int32     `parquet:"daily_factors,snappy"`
	MonthlyFactors int32     `parquet:"monthly_factors,snappy"`
	CreatedAt      time.Time `parquet:"created_at,snappy"`
}

// ResultRow is the flat per-result row used when a computation is exported
// directly (aadv compute --output parquet).
type ResultRow struct {
	SiteID         string  `parquet:"site_id,snappy"`
	Year           int32   `parquet:"year,snappy"`
	AADV           float64 `parquet:"aadv,snappy"`
	Method         string  `parquet:"method,snappy"`
	WarningCount   int32   `parquet:"warning_count,snappy"`
	HourlyFactors  int32   `parquet:"hourly_factors,snappy"`
	DailyFactors   int32   `parquet:"daily_factors,snappy"`
	MonthlyFactors int32   `parquet:"monthly_factors,snappy"`
}

// ConvertRunRecords converts history run records into Parquet rows.
func ConvertRunRecords(runs []schema.RunRecord) []Run {
	converted := make([]Run, 0, len(runs))
	for _, r := range runs {
		row := Run{
			RunID:       r.ID,
			StartedAt:   r.StartedAt,
			ResultCount: int32(r.ResultCount),
		}
		if !r.EndedAt.IsZero() {
			ended := r.EndedAt
			row.EndedAt = &ended
		}
		if r.Params != nil {
			if data, err := json.Marshal(r.Params); err == nil {
				params := string(data)
				row.Params = &params
			}
		}
		converted = append(converted, row)
	}
	return converted
}

// ConvertSiteYearRecords converts history result records into Parquet rows.
func ConvertSiteYearRecords(records []schema.SiteYearRecord) []SiteYearResult {
	converted := make([]SiteYearResult, 0, len(records))
	for _, r := range records {
		converted = append(converted, SiteYearResult{
			RunID:          r.RunID,
			SiteID:         r.SiteID,
			Year:           int32(r.Year),
			AADV:           r.AADV,
			Method:         r.Method,
			WarningCount:   int32(r.WarningCount),
			HourlyFactors:  int32(r.HourlyFactors),
			DailyFactors:   int32(r.DailyFactors),
			MonthlyFactors: int32(r.MonthlyFactors),
			CreatedAt:      r.CreatedAt,
		})
	}
	return converted
}

// ConvertResults converts live computation results into Parquet rows.
func ConvertResults(results []schema.AADVCalculationResult) []ResultRow {
	converted := make([]ResultRow, 0, len(results))
	for _, r := range results {
		converted = append(converted, ResultRow{
			SiteID:         r.SiteYear.SiteID,
			Year:           int32(r.SiteYear.Year),
			AADV:           r.SiteYear.AADV,
			Method:         string(r.Method),
			WarningCount:   int32(len(r.Warnings)),
			HourlyFactors:  int32(r.Factors.HourlyApplied),
			DailyFactors:   int32(r.Factors.DailyApplied),
			MonthlyFactors: int32(r.Factors.MonthlyApplied),
		})
	}
	return converted
}

// WriteRunsParquet writes run rows to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSiteYearsParquet writes site-year rows to a Parquet file.
func WriteSiteYearsParquet(data []SiteYearResult, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteResultsParquet writes live result rows to a Parquet file.
func WriteResultsParquet(data []ResultRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes any row type using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}
