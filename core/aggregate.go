package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/sbcounts/aadv/schema"
)

// Aggregator groups raw rows by (site, year), expands each observed
// site-day, and averages the per-day estimates into one AADV per
// site-year. Filtering by mode or date range is the caller's concern; the
// aggregator works on whatever rows it receives.
//
// Each day's expansion independently estimates the annual average, so the
// per-day values are averaged rather than summed. A density-weighted
// average would be a possible refinement; the unweighted mean is the
// source system's accepted behavior.
type Aggregator struct {
	Hourly *schema.ExpansionProfile
	Norm   *schema.NormalizationProfile
	Scale  float64 // fallback scale, used when profiles are unavailable
}

// NewAggregator builds an aggregator. Either profile may be nil, in which
// case every run degrades to the fallback estimator.
func NewAggregator(hourly *schema.ExpansionProfile, norm *schema.NormalizationProfile, scale float64) *Aggregator {
	if scale <= 0 {
		scale = schema.DefaultFallbackScale
	}
	return &Aggregator{Hourly: hourly, Norm: norm, Scale: scale}
}

// Aggregate produces exactly one result per distinct (site, year) pair in
// rows. The expansion path handles each site-day independently; if the
// path as a whole is unusable (missing profiles, or a panic inside the
// factor math) the entire batch degrades to the fallback estimator so the
// method tag stays uniform across the result set.
func (a *Aggregator) Aggregate(rows []schema.RawCountRecord) []schema.AADVCalculationResult {
	if len(rows) == 0 {
		return []schema.AADVCalculationResult{}
	}
	if a.Hourly == nil || a.Norm == nil {
		return FallbackAggregate(rows, a.Scale)
	}

	results, ok := a.expandAll(rows)
	if !ok {
		return FallbackAggregate(rows, a.Scale)
	}
	return results
}

// expandAll runs the expansion path over the whole batch. Any panic inside
// the factor math is contained here and reported as !ok, never propagated.
func (a *Aggregator) expandAll(rows []schema.RawCountRecord) (results []schema.AADVCalculationResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			results, ok = nil, false
		}
	}()

	grouped := groupRows(rows)

	results = make([]schema.AADVCalculationResult, 0, len(grouped))
	for key, days := range grouped {
		results = append(results, a.expandSiteYear(key, days))
	}

	sortResults(results)
	return results, true
}

// siteYearKey identifies one aggregation group.
type siteYearKey struct {
	siteID string
	year   int
}

// groupRows buckets raw rows by site, year, calendar date and hour,
// summing duplicate (site, timestamp) counts from multiple sensors.
func groupRows(rows []schema.RawCountRecord) map[siteYearKey]map[string]map[int]float64 {
	grouped := make(map[siteYearKey]map[string]map[int]float64)
	for _, row := range rows {
		key := siteYearKey{siteID: row.SiteID, year: row.Timestamp.Year()}
		days, ok := grouped[key]
		if !ok {
			days = make(map[string]map[int]float64)
			grouped[key] = days
		}
		date := schema.DateKey(row.Timestamp)
		hours, ok := days[date]
		if !ok {
			hours = make(map[int]float64)
			days[date] = hours
		}
		hours[row.Timestamp.Hour()] += row.Count
	}
	return grouped
}

// expandSiteYear expands every observed day of one site-year and averages
// the per-day estimates. The average of a single day is that day; sites
// with one day of data need no special casing.
func (a *Aggregator) expandSiteYear(key siteYearKey, days map[string]map[int]float64) schema.AADVCalculationResult {
	result := schema.AADVCalculationResult{Method: schema.ExpansionMethod}

	var sum float64
	for _, date := range sortedDates(days) {
		exp := ExpandDailyVolume(days[date], dayContextFor(date), a.Hourly, a.Norm)
		sum += exp.Value
		result.Factors.Add(exp.Usage)
		for _, w := range exp.Warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("site %s %s: %s", key.siteID, date, w))
		}
	}

	result.SiteYear = schema.SiteYear{
		SiteID: key.siteID,
		Year:   key.year,
		AADV:   schema.Round2(sum / float64(len(days))),
	}
	return result
}

// dayContextFor derives the calendar facts for a date key.
func dayContextFor(date string) DayContext {
	t, err := time.Parse(schema.DateKeyFormat, date)
	if err != nil {
		// Date keys are produced by schema.DateKey; a parse failure here is
		// a programming error and the batch-level recover handles it.
		panic(fmt.Sprintf("bad date key %q: %v", date, err))
	}
	return DayContext{
		Month:   int(t.Month()),
		DayName: schema.DayNameFor(t),
		DayType: schema.DayTypeFor(t),
	}
}

// sortedDates returns the observed dates of one site-year in ascending
// order.
func sortedDates(days map[string]map[int]float64) []string {
	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
