package core

import (
	"sort"

	"github.com/sbcounts/aadv/schema"
)

// RankSites sorts sites by combined bike + pedestrian volume in descending
// order and returns the top 'limit' entries. A limit of zero or less yields
// an empty slice; a limit beyond the input length returns all entries,
// still sorted. The input slice is never mutated, and ties keep their
// input order (stable sort, no secondary key).
func RankSites(sites []schema.SiteVolume, limit int) []schema.SiteVolume {
	if limit <= 0 {
		return []schema.SiteVolume{}
	}

	ranked := make([]schema.SiteVolume, len(sites))
	copy(ranked, sites)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total() > ranked[j].Total()
	})
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// SiteVolumesFromResults folds per-mode aggregation results into one
// SiteVolume per site, averaging each site's AADV estimates across years
// within a mode. Sites appear in first-seen order (bike results first),
// which is the tie order RankSites preserves.
func SiteVolumesFromResults(byMode map[schema.TravelMode][]schema.AADVCalculationResult) []schema.SiteVolume {
	type tally struct {
		sum float64
		n   int
	}

	index := make(map[string]int)
	var volumes []schema.SiteVolume
	tallies := make(map[string]map[schema.TravelMode]*tally)

	for _, mode := range []schema.TravelMode{schema.BikeMode, schema.PedMode} {
		for _, r := range byMode[mode] {
			site := r.SiteYear.SiteID
			if _, ok := index[site]; !ok {
				index[site] = len(volumes)
				volumes = append(volumes, schema.SiteVolume{SiteID: site})
				tallies[site] = make(map[schema.TravelMode]*tally)
			}
			t, ok := tallies[site][mode]
			if !ok {
				t = &tally{}
				tallies[site][mode] = t
			}
			t.sum += r.SiteYear.AADV
			t.n++
		}
	}

	for site, byModeTally := range tallies {
		i := index[site]
		if t, ok := byModeTally[schema.BikeMode]; ok && t.n > 0 {
			volumes[i].Bike = t.sum / float64(t.n)
		}
		if t, ok := byModeTally[schema.PedMode]; ok && t.n > 0 {
			volumes[i].Ped = t.sum / float64(t.n)
		}
	}

	return volumes
}
