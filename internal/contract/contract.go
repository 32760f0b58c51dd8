// Package contract provides interfaces and shared utilities for the aadv
// CLI's internal architecture.
package contract

import (
	"context"

	"github.com/sbcounts/aadv/schema"
)

// ProfileSource fetches a raw factor-table document. Implementations are
// the HTTP source and the local-directory source.
type ProfileSource interface {
	Fetch(ctx context.Context, kind schema.ProfileKind) ([]byte, error)
}

// CountSource yields the raw count rows to aggregate. The sequence may be
// unordered and may contain duplicate timestamps per site.
type CountSource interface {
	Rows(ctx context.Context) ([]schema.RawCountRecord, error)
}

// HistoryStore persists computation runs and their results.
// This allows the history layer to be mocked for testing.
type HistoryStore interface {
	BeginRun(params map[string]any) (int64, error)
	RecordResult(runID int64, result schema.AADVCalculationResult) error
	EndRun(runID int64, resultCount int) error
	GetStatus() (schema.HistoryStatus, error)
	GetAllRuns() ([]schema.RunRecord, error)
	GetAllResults() ([]schema.SiteYearRecord, error)
	Close() error
}

// HistoryManager hands out the configured history store, or nil when
// history tracking is disabled.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}
