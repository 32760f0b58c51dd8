package core

import (
	"fmt"
	"math"

	"github.com/sbcounts/aadv/schema"
)

// ValidateResults classifies results post-hoc. NaN, infinite or negative
// AADV values are invalid and surfaced with a synthesized warning, never
// silently dropped or clamped. A zero AADV is valid but noteworthy (a
// closed counter reads zero legitimately), so it contributes exactly one
// zero-value warning. Warnings already carried on each result are folded
// into the flat list verbatim.
func ValidateResults(results []schema.AADVCalculationResult) schema.ValidationOutput {
	var out schema.ValidationOutput

	for _, r := range results {
		out.Warnings = append(out.Warnings, r.Warnings...)

		aadv := r.SiteYear.AADV
		if math.IsNaN(aadv) || math.IsInf(aadv, 0) || aadv < 0 {
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"invalid AADV %v for site %s year %d", aadv, r.SiteYear.SiteID, r.SiteYear.Year))
			out.Invalid = append(out.Invalid, r)
			continue
		}
		if aadv == 0 {
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"zero AADV for site %s year %d", r.SiteYear.SiteID, r.SiteYear.Year))
		}
		out.Valid = append(out.Valid, r)
	}

	return out
}
