// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteResults prints AADV computation results using the configured output
// format.
func (ow *OutWriter) WriteResults(validated schema.ValidationOutput, cfg *contract.Config, duration time.Duration) error {
	return WriteComputeResults(validated, cfg, duration)
}

// WriteRanking prints ranked site volumes using the configured output
// format.
func (ow *OutWriter) WriteRanking(ranked []schema.SiteVolume, cfg *contract.Config, duration time.Duration) error {
	return WriteRankingResults(ranked, cfg, duration)
}

// WriteComparison prints a year-over-year comparison using the configured
// output format.
func (ow *OutWriter) WriteComparison(cmp schema.YearComparison, cfg *contract.Config, duration time.Duration) error {
	return WriteComparisonResults(cmp, cfg, duration)
}
