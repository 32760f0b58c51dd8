package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/sbcounts/aadv/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	runSchema := parquet.SchemaOf(new(Run))
	require.NotNil(t, runSchema)

	expectedColumns := []string{
		"run_id",
		"started_at",
		"ended_at",
		"result_count",
		"params",
	}
	for _, colName := range expectedColumns {
		_, ok := runSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestSiteYearResultStructTags(t *testing.T) {
	resultSchema := parquet.SchemaOf(new(SiteYearResult))
	require.NotNil(t, resultSchema)

	expectedColumns := []string{
		"run_id",
		"site_id",
		"year",
		"aadv",
		"method",
		"warning_count",
		"hourly_factors",
		"daily_factors",
		"monthly_factors",
		"created_at",
	}
	for _, colName := range expectedColumns {
		_, ok := resultSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestConvertRunRecords(t *testing.T) {
	started := time.Date(2023, time.June, 6, 8, 0, 0, 0, time.UTC)
	ended := started.Add(time.Minute)

	rows := ConvertRunRecords([]schema.RunRecord{
		{ID: 1, StartedAt: started, EndedAt: ended, ResultCount: 5, Params: map[string]any{"mode": "bike"}},
		{ID: 2, StartedAt: started}, // still running, no end time
	})
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, int32(5), rows[0].ResultCount)
	require.NotNil(t, rows[0].EndedAt)
	assert.Equal(t, ended, *rows[0].EndedAt)
	require.NotNil(t, rows[0].Params)
	assert.JSONEq(t, `{"mode":"bike"}`, *rows[0].Params)

	assert.Nil(t, rows[1].EndedAt)
	assert.Nil(t, rows[1].Params)
}

func TestConvertResults(t *testing.T) {
	rows := ConvertResults([]schema.AADVCalculationResult{{
		SiteYear: schema.SiteYear{SiteID: "greenway", Year: 2023, AADV: 166.35},
		Method:   schema.ExpansionMethod,
		Warnings: []string{"a", "b"},
		Factors:  schema.FactorUsage{HourlyApplied: 16, DailyApplied: 1, MonthlyApplied: 1},
	}})
	require.Len(t, rows, 1)

	assert.Equal(t, "greenway", rows[0].SiteID)
	assert.Equal(t, int32(2023), rows[0].Year)
	assert.InDelta(t, 166.35, rows[0].AADV, 1e-9)
	assert.Equal(t, "expansion", rows[0].Method)
	assert.Equal(t, int32(2), rows[0].WarningCount)
	assert.Equal(t, int32(16), rows[0].HourlyFactors)
}

func TestWriteResultsParquetRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results.parquet")

	data := []ResultRow{
		{SiteID: "greenway", Year: 2023, AADV: 166.35, Method: "expansion", HourlyFactors: 16},
		{SiteID: "riverside", Year: 2023, AADV: 42.5, Method: "fallback", WarningCount: 1},
	}
	require.NoError(t, WriteResultsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[ResultRow](file)
	defer func() { _ = reader.Close() }()

	readData := make([]ResultRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, data[0], readData[0])
	assert.Equal(t, data[1], readData[1])
}

func TestWriteRunsParquetEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty_runs.parquet")

	require.NoError(t, WriteRunsParquet([]Run{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquetInvalidPath(t *testing.T) {
	err := WriteResultsParquet([]ResultRow{{SiteID: "s"}}, "/nonexistent/directory/out.parquet")
	require.Error(t, err)
}
