package core

import (
	"math"
	"sort"

	"github.com/sbcounts/aadv/schema"
)

// CompareYears computes the set of sites present in both target years, the
// sites unique to each, and the percentage change in mean AADV restricted
// to the shared set.
//
// The comparison is valid only when the shared set is non-empty and the
// baseline mean is finite and strictly positive: a zero or missing
// baseline must never produce a derived percentage.
func CompareYears(records []schema.SiteYear, year0, year1 int) schema.YearComparison {
	cmp := schema.YearComparison{Year0: year0, Year1: year1}

	base := collectYear(records, year0)
	target := collectYear(records, year1)

	for site := range base {
		if _, ok := target[site]; ok {
			cmp.SharedSites = append(cmp.SharedSites, site)
		} else {
			cmp.OnlyYear0 = append(cmp.OnlyYear0, site)
		}
	}
	for site := range target {
		if _, ok := base[site]; !ok {
			cmp.OnlyYear1 = append(cmp.OnlyYear1, site)
		}
	}
	sort.Strings(cmp.SharedSites)
	sort.Strings(cmp.OnlyYear0)
	sort.Strings(cmp.OnlyYear1)

	if len(cmp.SharedSites) == 0 {
		return cmp
	}

	cmp.Mean0 = sharedMean(base, cmp.SharedSites)
	cmp.Mean1 = sharedMean(target, cmp.SharedSites)

	if cmp.Mean0 > 0 && !math.IsInf(cmp.Mean0, 0) && !math.IsNaN(cmp.Mean0) {
		cmp.YoY = cmp.Mean1/cmp.Mean0 - 1
		cmp.OK = true
	}
	return cmp
}

// collectYear maps site -> AADV for one year. Should a site somehow carry
// several records for the same year, their mean is used.
func collectYear(records []schema.SiteYear, year int) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if r.Year != year {
			continue
		}
		sums[r.SiteID] += r.AADV
		counts[r.SiteID]++
	}
	values := make(map[string]float64, len(sums))
	for site, sum := range sums {
		values[site] = sum / float64(counts[site])
	}
	return values
}

// sharedMean averages the per-site values over the shared-site subset.
func sharedMean(values map[string]float64, shared []string) float64 {
	var sum float64
	for _, site := range shared {
		sum += values[site]
	}
	return sum / float64(len(shared))
}
