package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleValidated() schema.ValidationOutput {
	return schema.ValidationOutput{
		Valid: []schema.AADVCalculationResult{
			{
				SiteYear: schema.SiteYear{SiteID: "greenway", Year: 2023, AADV: 166.35},
				Method:   schema.ExpansionMethod,
				Factors:  schema.FactorUsage{HourlyApplied: 16, DailyApplied: 1, MonthlyApplied: 1},
			},
			{
				SiteYear: schema.SiteYear{SiteID: "riverside", Year: 2023, AADV: 42.5},
				Method:   schema.FallbackMethod,
				Warnings: []string{"site riverside 2023: limited data, 3 observation(s) cannot represent a complete day"},
			},
		},
		Warnings: []string{"site riverside 2023: limited data, 3 observation(s) cannot represent a complete day"},
	}
}

func computeConfig(output schema.OutputMode, outputFile string) *contract.Config {
	return &contract.Config{
		Mode:           schema.AllModes,
		Precision:      contract.DefaultPrecision,
		Output:         output,
		OutputFile:     outputFile,
		Width:          120,
		HistoryBackend: schema.SQLiteBackend,
	}
}

func TestWriteComputeResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	cfg := computeConfig(schema.CSVOut, path)

	require.NoError(t, WriteComputeResults(sampleValidated(), cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "site_id,year,aadv,method,label,hourly_factors,daily_factors,monthly_factors,warnings", string(lines[0]))
	assert.Equal(t, "greenway,2023,166.35,expansion,Moderate,16,1,1,0", string(lines[1]))
	assert.Equal(t, "riverside,2023,42.50,fallback,Light,0,0,0,1", string(lines[2]))
}

func TestWriteComputeResultsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	cfg := computeConfig(schema.JSONOut, path)

	require.NoError(t, WriteComputeResults(sampleValidated(), cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out struct {
		Results []struct {
			SiteID string  `json:"siteId"`
			Year   int     `json:"year"`
			AADV   float64 `json:"aadv"`
			Method string  `json:"method"`
			Label  string  `json:"label"`
		} `json:"results"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	require.Len(t, out.Results, 2)
	assert.Equal(t, "greenway", out.Results[0].SiteID)
	assert.Equal(t, 2023, out.Results[0].Year)
	assert.InDelta(t, 166.35, out.Results[0].AADV, 1e-9)
	assert.Equal(t, "expansion", out.Results[0].Method)
	assert.Equal(t, "Moderate", out.Results[0].Label)
	require.Len(t, out.Warnings, 1)
}

func TestWriteResultTable(t *testing.T) {
	cfg := computeConfig(schema.TextOut, "")
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	validated := sampleValidated()
	validated.Invalid = []schema.AADVCalculationResult{{
		SiteYear: schema.SiteYear{SiteID: "broken", Year: 2023, AADV: -1},
	}}

	require.NoError(t, writeResultTable(validated, cfg, fmtFloat, intFmt, 2*time.Second, &buf))

	text := buf.String()
	assert.Contains(t, text, "greenway")
	assert.Contains(t, text, "166.35")
	assert.Contains(t, text, "riverside")
	assert.Contains(t, text, "limited data")
	assert.Contains(t, text, "Excluded 1 invalid estimate(s)")
	assert.Contains(t, text, "Showing 2 site-year estimates (mode: all)")
	assert.Contains(t, text, "History backend: sqlite")
}

func TestWriteRankingResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rank.csv")
	cfg := computeConfig(schema.CSVOut, path)

	ranked := []schema.SiteVolume{
		{SiteID: "busy", Bike: 300, Ped: 450},
		{SiteID: "quiet", Bike: 5, Ped: 10},
	}
	require.NoError(t, WriteRankingResults(ranked, cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,site_id,bike,ped,total,label", string(lines[0]))
	assert.Equal(t, "1,busy,300.00,450.00,750.00,Heavy", string(lines[1]))
	assert.Equal(t, "2,quiet,5.00,10.00,15.00,Minimal", string(lines[2]))
}

func TestWriteRankTable(t *testing.T) {
	cfg := computeConfig(schema.TextOut, "")
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	ranked := []schema.SiteVolume{{SiteID: "busy", Bike: 300, Ped: 450}}
	require.NoError(t, writeRankTable(ranked, cfg, fmtFloat, time.Second, &buf))

	text := buf.String()
	assert.Contains(t, text, "busy")
	assert.Contains(t, text, "750.00")
	assert.Contains(t, text, "Showing top 1 sites (combined volume: 750.00)")
}

func TestWriteCompareText(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	t.Run("meaningful comparison", func(t *testing.T) {
		cmp := schema.YearComparison{
			Year0:       2022,
			Year1:       2023,
			SharedSites: []string{"greenway"},
			Mean0:       100,
			Mean1:       110,
			YoY:         0.1,
			OK:          true,
		}

		var buf bytes.Buffer
		require.NoError(t, writeCompareText(cmp, fmtFloat, time.Second, &buf))

		text := buf.String()
		assert.Contains(t, text, "2022 vs 2023")
		assert.Contains(t, text, "Shared sites:      1")
		assert.Contains(t, text, "Mean AADV 2022:     100.00")
		assert.Contains(t, text, "Mean AADV 2023:     110.00")
		assert.Contains(t, text, "10.00%")
	})

	t.Run("degenerate comparison", func(t *testing.T) {
		cmp := schema.YearComparison{Year0: 2022, Year1: 2023}

		var buf bytes.Buffer
		require.NoError(t, writeCompareText(cmp, fmtFloat, time.Second, &buf))
		assert.Contains(t, buf.String(), "Comparison is not meaningful")
	})
}

func TestWriteComparisonResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compare.csv")
	cfg := computeConfig(schema.CSVOut, path)

	cmp := schema.YearComparison{
		Year0:       2022,
		Year1:       2023,
		SharedSites: []string{"greenway"},
		OnlyYear1:   []string{"harbor"},
		Mean0:       100,
		Mean1:       110,
		YoY:         0.1,
		OK:          true,
	}
	require.NoError(t, WriteComparisonResults(cmp, cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "year0,year1,shared_sites,only_year0,only_year1,mean0,mean1,yoy_pct,ok", string(lines[0]))
	assert.Equal(t, "2022,2023,1,0,1,100.00,110.00,10.00,true", string(lines[1]))
}
