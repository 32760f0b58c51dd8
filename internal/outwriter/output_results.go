package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/internal/parquet"
	"github.com/sbcounts/aadv/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComputeResults outputs AADV estimates, dispatching based on the output format configured.
func WriteComputeResults(validated schema.ValidationOutput, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeResultJSON(validated, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeResultCSV(validated, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertResults(validated.Valid)
		if err := parquet.WriteResultsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("💾 Wrote %d site-year estimates to %s\n", len(rows), cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultTable(validated, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeResultJSON handles opening the file and calling the JSON writer.
func writeResultJSON(validated schema.ValidationOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type jsonResult struct {
			SiteID   string   `json:"siteId"`
			Year     int      `json:"year"`
			AADV     float64  `json:"aadv"`
			Method   string   `json:"method"`
			Label    string   `json:"label"`
			Warnings []string `json:"warnings,omitempty"`
		}
		type jsonOutput struct {
			Results  []jsonResult `json:"results"`
			Invalid  []jsonResult `json:"invalid,omitempty"`
			Warnings []string     `json:"warnings,omitempty"`
		}

		convert := func(results []schema.AADVCalculationResult) []jsonResult {
			out := make([]jsonResult, len(results))
			for i, r := range results {
				out[i] = jsonResult{
					SiteID:   r.SiteYear.SiteID,
					Year:     r.SiteYear.Year,
					AADV:     r.SiteYear.AADV,
					Method:   string(r.Method),
					Label:    contract.GetPlainVolumeLabel(r.SiteYear.AADV),
					Warnings: r.Warnings,
				}
			}
			return out
		}

		return writeJSON(w, jsonOutput{
			Results:  convert(validated.Valid),
			Invalid:  convert(validated.Invalid),
			Warnings: validated.Warnings,
		})
	}, "Wrote JSON")
}

// writeResultCSV handles opening the file and calling the CSV writer.
func writeResultCSV(validated schema.ValidationOutput, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"site_id",
			"year",
			"aadv",
			"method",
			"label",
			"hourly_factors",
			"daily_factors",
			"monthly_factors",
			"warnings",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, r := range validated.Valid {
				rec := []string{
					r.SiteYear.SiteID,                   // Site
					strconv.Itoa(r.SiteYear.Year),       // Year
					fmtFloat(r.SiteYear.AADV),           // Estimate
					string(r.Method),                    // Method
					contract.GetPlainVolumeLabel(r.SiteYear.AADV), // Label
					fmt.Sprintf(intFmt, r.Factors.HourlyApplied),
					fmt.Sprintf(intFmt, r.Factors.DailyApplied),
					fmt.Sprintf(intFmt, r.Factors.MonthlyApplied),
					fmt.Sprintf(intFmt, len(r.Warnings)),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeResultTable generates and writes the human-readable table.
func writeResultTable(validated schema.ValidationOutput, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Site", "Year", "AADV", "Method", "Label", "Warnings"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	siteWidth := getMaxTableSiteWidth(cfg)
	var data [][]string
	for _, r := range validated.Valid {
		label := contract.GetPlainVolumeLabel(r.SiteYear.AADV)
		if cfg.UseColors {
			label = contract.GetColorVolumeLabel(r.SiteYear.AADV)
		}
		data = append(data, []string{
			truncateSiteID(r.SiteYear.SiteID, siteWidth),   // Site
			strconv.Itoa(r.SiteYear.Year),                  // Year
			fmtFloat(r.SiteYear.AADV),                      // Estimate
			contract.GetMethodLabel(r.Method, cfg.UseColors), // Method
			label,                                // Volume label
			fmt.Sprintf(intFmt, len(r.Warnings)), // Warning count
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Warning detail and summary stats below the table
	for _, warning := range validated.Warnings {
		if _, err := fmt.Fprintf(writer, "⚠️  %s\n", warning); err != nil {
			return err
		}
	}
	if len(validated.Invalid) > 0 {
		if _, err := fmt.Fprintf(writer, "Excluded %d invalid estimate(s)\n", len(validated.Invalid)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d site-year estimates (mode: %s)\n", len(validated.Valid), cfg.Mode); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Computation completed in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}
