package core

import (
	"testing"

	"github.com/sbcounts/aadv/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteYear(site string, year int, aadv float64) schema.SiteYear {
	return schema.SiteYear{SiteID: site, Year: year, AADV: aadv}
}

func TestCompareYears(t *testing.T) {
	t.Run("ten percent growth on the shared set", func(t *testing.T) {
		records := []schema.SiteYear{
			siteYear("greenway", 2022, 100),
			siteYear("greenway", 2023, 110),
		}

		cmp := CompareYears(records, 2022, 2023)
		require.True(t, cmp.OK)
		assert.Equal(t, []string{"greenway"}, cmp.SharedSites)
		assert.InDelta(t, 100.0, cmp.Mean0, 1e-9)
		assert.InDelta(t, 110.0, cmp.Mean1, 1e-9)
		assert.InDelta(t, 0.1, cmp.YoY, 1e-9)
	})

	t.Run("site sets are partitioned and sorted", func(t *testing.T) {
		records := []schema.SiteYear{
			siteYear("c", 2022, 10),
			siteYear("a", 2022, 10),
			siteYear("a", 2023, 10),
			siteYear("b", 2023, 10),
		}

		cmp := CompareYears(records, 2022, 2023)
		assert.Equal(t, []string{"a"}, cmp.SharedSites)
		assert.Equal(t, []string{"c"}, cmp.OnlyYear0)
		assert.Equal(t, []string{"b"}, cmp.OnlyYear1)
	})

	t.Run("no shared sites is not meaningful", func(t *testing.T) {
		records := []schema.SiteYear{
			siteYear("a", 2022, 10),
			siteYear("b", 2023, 10),
		}

		cmp := CompareYears(records, 2022, 2023)
		assert.False(t, cmp.OK)
		assert.Zero(t, cmp.YoY)
		assert.Zero(t, cmp.Mean0)
	})

	t.Run("zero baseline mean is not meaningful", func(t *testing.T) {
		records := []schema.SiteYear{
			siteYear("a", 2022, 0),
			siteYear("a", 2023, 50),
		}

		cmp := CompareYears(records, 2022, 2023)
		assert.False(t, cmp.OK)
		assert.Zero(t, cmp.YoY)
		assert.InDelta(t, 50.0, cmp.Mean1, 1e-9)
	})

	t.Run("duplicate site-year records are averaged", func(t *testing.T) {
		records := []schema.SiteYear{
			siteYear("a", 2022, 80),
			siteYear("a", 2022, 120),
			siteYear("a", 2023, 110),
		}

		cmp := CompareYears(records, 2022, 2023)
		require.True(t, cmp.OK)
		assert.InDelta(t, 100.0, cmp.Mean0, 1e-9)
		assert.InDelta(t, 0.1, cmp.YoY, 1e-9)
	})

	t.Run("empty records", func(t *testing.T) {
		cmp := CompareYears(nil, 2022, 2023)
		assert.False(t, cmp.OK)
		assert.Empty(t, cmp.SharedSites)
		assert.Equal(t, 2022, cmp.Year0)
		assert.Equal(t, 2023, cmp.Year1)
	})
}
