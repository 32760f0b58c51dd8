// Package core implements the AADV volume expansion and normalization
// engine: daily expansion, site-year aggregation, the profile-free
// fallback, and the validation/ranking/comparison utilities that consume
// aggregated results.
package core

import (
	"fmt"
	"sort"

	"github.com/sbcounts/aadv/schema"
)

// DayContext carries the calendar facts needed to expand one site-day.
type DayContext struct {
	Month   int            // 1-12
	DayName string         // lowercase day-of-week name
	DayType schema.DayType // weekday/saturday/sunday bucket
}

// DayExpansion is the outcome of expanding one site-day: an
// annualized-equivalent daily volume, the warnings produced along the way,
// and a tally of which factor layers fired.
type DayExpansion struct {
	Value    float64
	Usage    schema.FactorUsage
	Warnings []string
}

// ExpandDailyVolume converts one site-day's raw hourly counts into one
// normalized daily volume contribution.
//
// Full-coverage days sum raw counts directly (hourly factors are
// unnecessary when the whole day was observed). Partial days weight each
// observed hour by the reciprocal of its expansion factor and divide the
// observed total by the accumulated share. Both cases then apply the
// day-of-week and monthly normalization factors. Every missing factor is
// recorded as a warning; computation continues with the unmultiplied value.
func ExpandDailyVolume(counts map[int]float64, day DayContext, hourly *schema.ExpansionProfile, norm *schema.NormalizationProfile) DayExpansion {
	var exp DayExpansion

	switch ClassifyCoverage(counts) {
	case FullCoverage:
		exp.Value = sumCounts(counts)
	default:
		exp.Value = expandPartialDay(counts, day, hourly, &exp)
	}

	applyNormalization(day, norm, &exp)
	return exp
}

// sumCounts totals the raw counts of a fully observed day.
func sumCounts(counts map[int]float64) float64 {
	var total float64
	for _, c := range counts {
		total += c
	}
	return total
}

// expandPartialDay estimates the average daily total from a partial hour
// pattern. Each observed hour with a positive factor H contributes its
// count to the numerator and p = 1/H to the denominator; ADT = sum(count)
// / sum(p). If no usable hourly factor exists at all, the raw observed sum
// stands in as a degraded estimate.
func expandPartialDay(counts map[int]float64, day DayContext, hourly *schema.ExpansionProfile, exp *DayExpansion) float64 {
	var countSum, pSum float64

	// Iterate hours in order so warnings come out deterministically.
	for _, hour := range sortedHours(counts) {
		factor, ok := hourly.HourFactor(day.Month, day.DayType, hour)
		if !ok || factor <= 0 {
			// Missing factors outside the core daytime band are expected.
			if hour >= schema.CoreDaytimeStart && hour <= schema.CoreDaytimeEnd {
				exp.Warnings = append(exp.Warnings, fmt.Sprintf(
					"missing hourly factor for month=%d dayType=%s hour=%d", day.Month, day.DayType, hour))
			}
			continue
		}
		countSum += counts[hour]
		pSum += 1 / factor
		exp.Usage.HourlyApplied++
		exp.Usage.UsedHourly = true
	}

	if pSum > 0 {
		return countSum / pSum
	}

	// No valid hourly factors at all: fall back to the raw observed sum.
	exp.Warnings = append(exp.Warnings,
		"no usable hourly factors; using raw sum of observed counts (degraded estimate)")
	return sumCounts(counts)
}

// applyNormalization applies the day-of-week and monthly factors to the
// daily total, warning and leaving the value unchanged for any missing
// layer.
func applyNormalization(day DayContext, norm *schema.NormalizationProfile, exp *DayExpansion) {
	if factor, ok := norm.DayFactor(day.Month, day.DayName); ok {
		exp.Value *= factor
		exp.Usage.DailyApplied++
		exp.Usage.UsedDaily = true
	} else {
		exp.Warnings = append(exp.Warnings, fmt.Sprintf(
			"missing daily factor for month=%d day=%s", day.Month, day.DayName))
	}

	if factor, ok := norm.MonthFactor(day.Month); ok {
		exp.Value *= factor
		exp.Usage.MonthlyApplied++
		exp.Usage.UsedMonthly = true
	} else {
		exp.Warnings = append(exp.Warnings, fmt.Sprintf(
			"missing monthly factor for month=%d", day.Month))
	}
}

// sortedHours returns the observed hours in ascending order.
func sortedHours(counts map[int]float64) []int {
	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}
