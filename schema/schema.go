// Package schema has configs, models and shared helpers for all parts of aadv.
package schema

import "time"

// RawCountRecord is one hourly observation from a count site, as delivered
// by the upstream count source. Records are immutable once ingested; the
// engine never mutates them. Duplicate timestamps for the same site are
// legitimate (multiple sensors) and are summed during aggregation.
type RawCountRecord struct {
	SiteID    string     // Site identifier, normalized to a string at ingest
	Timestamp time.Time  // Absolute instant of the observation
	Count     float64    // Non-negative count; absent counts ingest as 0
	Mode      TravelMode // bike or ped
}

// SiteYear is the canonical output unit: one annualized daily volume
// estimate per site per calendar year. Immutable value type.
type SiteYear struct {
	SiteID string  `json:"site_id"`
	Year   int     `json:"year"`
	AADV   float64 `json:"aadv"`
}

// FactorUsage tallies which factor layers actually contributed to an
// estimate, for debugging and trust assessment downstream.
type FactorUsage struct {
	HourlyApplied  int  `json:"hourly_applied"`  // hourly expansion factors applied
	DailyApplied   int  `json:"daily_applied"`   // day-of-week factors applied
	MonthlyApplied int  `json:"monthly_applied"` // monthly factors applied
	UsedHourly     bool `json:"used_hourly"`
	UsedDaily      bool `json:"used_daily"`
	UsedMonthly    bool `json:"used_monthly"`
}

// Add merges another usage tally into this one.
func (u *FactorUsage) Add(other FactorUsage) {
	u.HourlyApplied += other.HourlyApplied
	u.DailyApplied += other.DailyApplied
	u.MonthlyApplied += other.MonthlyApplied
	u.UsedHourly = u.UsedHourly || other.UsedHourly
	u.UsedDaily = u.UsedDaily || other.UsedDaily
	u.UsedMonthly = u.UsedMonthly || other.UsedMonthly
}

// AADVCalculationResult is the full record for one site-year: the estimate,
// every warning encountered while producing it, the method used, and the
// factor usage tally. One per (site, year) key per aggregation run.
type AADVCalculationResult struct {
	SiteYear SiteYear    `json:"site_year"`
	Warnings []string    `json:"warnings,omitempty"`
	Method   Method      `json:"method"`
	Factors  FactorUsage `json:"factors"`
}

// SiteVolume holds per-mode traffic volume for one site, used by ranking.
// A mode with no data contributes 0.
type SiteVolume struct {
	SiteID string  `json:"site_id"`
	Bike   float64 `json:"bike"`
	Ped    float64 `json:"ped"`
}

// Total returns the combined bike + pedestrian volume.
func (v SiteVolume) Total() float64 {
	return v.Bike + v.Ped
}

// ValidationOutput partitions computed results into valid and invalid
// buckets and flattens every warning, in result order.
type ValidationOutput struct {
	Valid    []AADVCalculationResult `json:"valid"`
	Invalid  []AADVCalculationResult `json:"invalid,omitempty"`
	Warnings []string                `json:"warnings,omitempty"`
}

// YearComparison is the output of the year-over-year comparator.
type YearComparison struct {
	Year0       int      `json:"year0"`
	Year1       int      `json:"year1"`
	SharedSites []string `json:"shared_sites"`
	OnlyYear0   []string `json:"only_year0,omitempty"`
	OnlyYear1   []string `json:"only_year1,omitempty"`
	Mean0       float64  `json:"mean0"`
	Mean1       float64  `json:"mean1"`
	YoY         float64  `json:"yoy"` // mean1/mean0 - 1, meaningful only when OK
	OK          bool     `json:"ok"`
}
