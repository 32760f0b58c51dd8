package core

// Coverage classifies how much of a site-day was observed, which selects
// the expansion arithmetic for that day.
type Coverage int

// The two measurement-coverage cases.
const (
	// FullCoverage means all 24 hours were observed; raw counts sum
	// directly into a daily total and hourly factors are skipped.
	FullCoverage Coverage = iota

	// PartialCoverage means any other hour pattern; observed hours are
	// weighted by reciprocal expansion factors.
	PartialCoverage
)

// ClassifyCoverage inspects the observed hours of one site-day. A day is
// fully covered only when exactly 24 distinct hours are present, including
// both hour 0 and hour 23.
func ClassifyCoverage(counts map[int]float64) Coverage {
	if len(counts) != 24 {
		return PartialCoverage
	}
	if _, ok := counts[0]; !ok {
		return PartialCoverage
	}
	if _, ok := counts[23]; !ok {
		return PartialCoverage
	}
	return FullCoverage
}
