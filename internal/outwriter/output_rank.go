package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankingResults outputs ranked site volumes, dispatching based on the output format configured.
func WriteRankingResults(ranked []schema.SiteVolume, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRankJSON(ranked, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRankCSV(ranked, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankTable(ranked, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRankJSON handles opening the file and calling the JSON writer.
func writeRankJSON(ranked []schema.SiteVolume, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type jsonRank struct {
			Rank  int    `json:"rank"`
			Label string `json:"label"`
			schema.SiteVolume
		}

		output := make([]jsonRank, len(ranked))
		for i, s := range ranked {
			output[i] = jsonRank{
				Rank:       i + 1,
				Label:      contract.GetPlainVolumeLabel(s.Total()),
				SiteVolume: s,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeRankCSV handles opening the file and calling the CSV writer.
func writeRankCSV(ranked []schema.SiteVolume, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "site_id", "bike", "ped", "total", "label"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, s := range ranked {
				rec := []string{
					strconv.Itoa(i + 1),
					s.SiteID,
					fmtFloat(s.Bike),
					fmtFloat(s.Ped),
					fmtFloat(s.Total()),
					contract.GetPlainVolumeLabel(s.Total()),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeRankTable generates and writes the human-readable table.
func writeRankTable(ranked []schema.SiteVolume, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Site", "Bike", "Ped", "Total", "Label"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	siteWidth := getMaxTableSiteWidth(cfg)
	var data [][]string
	var totalVolume float64
	for i, s := range ranked {
		label := contract.GetPlainVolumeLabel(s.Total())
		if cfg.UseColors {
			label = contract.GetColorVolumeLabel(s.Total())
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),                  // Rank
			truncateSiteID(s.SiteID, siteWidth),  // Site
			fmtFloat(s.Bike),                     // Bike volume
			fmtFloat(s.Ped),                      // Ped volume
			fmtFloat(s.Total()),                  // Combined
			label,                                // Volume label
		})
		totalVolume += s.Total()
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d sites (combined volume: %s)\n", len(ranked), fmtFloat(totalVolume)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Ranking completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
