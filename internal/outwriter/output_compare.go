package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
)

// WriteComparisonResults outputs a year-over-year comparison, dispatching based on the output format configured.
func WriteComparisonResults(cmp schema.YearComparison, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, cmp)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCompareCSV(cmp, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCompareText(cmp, fmtFloat, duration, w)
		}, "Wrote comparison")
	}
	return nil
}

// writeCompareCSV flattens the comparison into a single summary row.
func writeCompareCSV(cmp schema.YearComparison, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"year0", "year1", "shared_sites", "only_year0", "only_year1",
			"mean0", "mean1", "yoy_pct", "ok",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return csvWriter.Write([]string{
				strconv.Itoa(cmp.Year0),
				strconv.Itoa(cmp.Year1),
				strconv.Itoa(len(cmp.SharedSites)),
				strconv.Itoa(len(cmp.OnlyYear0)),
				strconv.Itoa(len(cmp.OnlyYear1)),
				fmtFloat(cmp.Mean0),
				fmtFloat(cmp.Mean1),
				fmtFloat(cmp.YoY * 100),
				strconv.FormatBool(cmp.OK),
			})
		})
	}, "Wrote CSV")
}

// writeCompareText prints the human-readable comparison summary.
func writeCompareText(cmp schema.YearComparison, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Year-over-year comparison: %d vs %d\n\n", cmp.Year0, cmp.Year1); err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("Shared sites:      %d", len(cmp.SharedSites)),
		fmt.Sprintf("Only in %d:      %d", cmp.Year0, len(cmp.OnlyYear0)),
		fmt.Sprintf("Only in %d:      %d", cmp.Year1, len(cmp.OnlyYear1)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}

	if !cmp.OK {
		if _, err := fmt.Fprintln(writer, "\n⚠️  Comparison is not meaningful (no shared sites or zero baseline volume)"); err != nil {
			return err
		}
		return nil
	}

	if _, err := fmt.Fprintf(writer, "\nMean AADV %d:     %s\n", cmp.Year0, fmtFloat(cmp.Mean0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Mean AADV %d:     %s\n", cmp.Year1, fmtFloat(cmp.Mean1)); err != nil {
		return err
	}

	direction := "📈"
	if cmp.YoY < 0 {
		direction = "📉"
	}
	if _, err := fmt.Fprintf(writer, "Change:            %s %s%%\n", direction, fmtFloat(cmp.YoY*100)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Comparison completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
