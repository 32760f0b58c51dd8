package history

import (
	"errors"
	"fmt"

	"github.com/sbcounts/aadv/internal/parquet"
)

// ExecuteExport writes all recorded runs and site-year results to a pair
// of Parquet files derived from outputFile.
func ExecuteExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history tracking is disabled (backend none)")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total site-year records: %d\n", status.TableSizes[resultsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	results, err := store.GetAllResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve site-year results: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	resultsFile := outputFile + ".site_years.parquet"
	if err := parquet.WriteSiteYearsParquet(parquet.ConvertSiteYearRecords(results), resultsFile); err != nil {
		return fmt.Errorf("failed to write site-year results: %w", err)
	}
	fmt.Printf("Exported %d site-year records to: %s\n", len(results), resultsFile)

	return nil
}
