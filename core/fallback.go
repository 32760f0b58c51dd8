package core

import (
	"fmt"
	"sort"

	"github.com/sbcounts/aadv/schema"
)

// FallbackAggregate is the profile-free estimator: for each (site, year)
// group it scales the mean hourly count by a fixed multiplier to
// approximate a daily total. It never fails; zero input rows produce an
// empty result set. This is the unconditional safety net when factor data
// is unavailable or the expansion path blows up; a factor-data problem
// must never prevent producing some usable estimate.
func FallbackAggregate(rows []schema.RawCountRecord, scale float64) []schema.AADVCalculationResult {
	type tally struct {
		total float64
		n     int
	}

	tallies := make(map[schema.SiteYear]*tally)
	for _, row := range rows {
		key := schema.SiteYear{SiteID: row.SiteID, Year: row.Timestamp.Year()}
		t, ok := tallies[key]
		if !ok {
			t = &tally{}
			tallies[key] = t
		}
		t.total += row.Count
		t.n++
	}

	results := make([]schema.AADVCalculationResult, 0, len(tallies))
	for key, t := range tallies {
		result := schema.AADVCalculationResult{
			SiteYear: schema.SiteYear{
				SiteID: key.SiteID,
				Year:   key.Year,
				AADV:   schema.Round2(t.total / float64(t.n) * scale),
			},
			Method: schema.FallbackMethod,
		}
		if t.n < schema.HoursPerDay {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"site %s %d: limited data, %d observation(s) cannot represent a complete day",
				key.SiteID, key.Year, t.n))
		}
		results = append(results, result)
	}

	sortResults(results)
	return results
}

// sortResults orders results by site then year so output and warnings are
// deterministic across runs.
func sortResults(results []schema.AADVCalculationResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].SiteYear, results[j].SiteYear
		if a.SiteID != b.SiteID {
			return a.SiteID < b.SiteID
		}
		return a.Year < b.Year
	})
}
