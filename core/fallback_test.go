package core

import (
	"testing"
	"time"

	"github.com/sbcounts/aadv/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fallbackRow(site string, ts time.Time, count float64) schema.RawCountRecord {
	return schema.RawCountRecord{SiteID: site, Timestamp: ts, Count: count, Mode: schema.BikeMode}
}

func TestFallbackAggregate(t *testing.T) {
	base := time.Date(2023, time.July, 10, 8, 0, 0, 0, time.UTC)

	t.Run("scales the mean hourly count", func(t *testing.T) {
		rows := []schema.RawCountRecord{
			fallbackRow("greenway", base, 10),
			fallbackRow("greenway", base.Add(time.Hour), 20),
		}

		results := FallbackAggregate(rows, 24)
		require.Len(t, results, 1)
		// mean 15 * scale 24
		assert.InDelta(t, 360.0, results[0].SiteYear.AADV, 1e-9)
		assert.Equal(t, schema.FallbackMethod, results[0].Method)

		halved := FallbackAggregate(rows, 12)
		assert.InDelta(t, 180.0, halved[0].SiteYear.AADV, 1e-9)
	})

	t.Run("limited data warning below a full day", func(t *testing.T) {
		rows := []schema.RawCountRecord{fallbackRow("greenway", base, 10)}

		results := FallbackAggregate(rows, 24)
		require.Len(t, results, 1)
		require.Len(t, results[0].Warnings, 1)
		assert.Contains(t, results[0].Warnings[0], "limited data")
		assert.Contains(t, results[0].Warnings[0], "greenway")
	})

	t.Run("no warning at a full day of observations", func(t *testing.T) {
		rows := make([]schema.RawCountRecord, 0, schema.HoursPerDay)
		for hour := 0; hour < schema.HoursPerDay; hour++ {
			rows = append(rows, fallbackRow("greenway", base.Add(time.Duration(hour)*time.Hour), 5))
		}

		results := FallbackAggregate(rows, 24)
		require.Len(t, results, 1)
		assert.Empty(t, results[0].Warnings)
	})

	t.Run("empty input yields empty results", func(t *testing.T) {
		results := FallbackAggregate(nil, 24)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("groups by site and year, sorted", func(t *testing.T) {
		rows := []schema.RawCountRecord{
			fallbackRow("riverside", base, 4),
			fallbackRow("greenway", base.AddDate(1, 0, 0), 8),
			fallbackRow("greenway", base, 6),
		}

		results := FallbackAggregate(rows, 24)
		require.Len(t, results, 3)
		assert.Equal(t, "greenway", results[0].SiteYear.SiteID)
		assert.Equal(t, 2023, results[0].SiteYear.Year)
		assert.Equal(t, "greenway", results[1].SiteYear.SiteID)
		assert.Equal(t, 2024, results[1].SiteYear.Year)
		assert.Equal(t, "riverside", results[2].SiteYear.SiteID)
	})
}
