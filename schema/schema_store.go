package schema

import "time"

// RunRecord is one computation run as persisted by the history store.
type RunRecord struct {
	ID          int64
	StartedAt   time.Time
	EndedAt     time.Time
	ResultCount int
	Params      map[string]any
}

// SiteYearRecord is one persisted site-year result, flattened for storage
// and export.
type SiteYearRecord struct {
	ID             int64
	RunID          int64
	SiteID         string
	Year           int
	AADV           float64
	Method         string
	WarningCount   int
	HourlyFactors  int
	DailyFactors   int
	MonthlyFactors int
	CreatedAt      time.Time
}

// HistoryStatus summarizes the state of the history store.
type HistoryStatus struct {
	Backend    string
	Location   string
	TotalRuns  int64
	TableSizes map[string]int64
}
