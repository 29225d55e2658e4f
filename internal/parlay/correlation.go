package parlay

import (
	"sort"

	"github.com/yourusername/parlay-engine/internal/models"
)

// overLineThreshold is the totals line at or above which an Over outcome is
// treated as correlated with attacking outcomes on the same match
const overLineThreshold = 2.5

// maxLegsPerMatchMulti caps how many legs from one match survive the
// multi-game pool reduction, so no single match dominates the search space
const maxLegsPerMatchMulti = 2

// AreCorrelated reports whether two legs on the same match fall under one of
// the structural correlation rules. Legs from different matches, and any
// same-match pair outside the whitelist, are treated as uncorrelated — a
// conservative heuristic, not a statistical correlation model.
func AreCorrelated(a, b *models.Leg) bool {
	if a == nil || b == nil || a.MatchID != b.MatchID {
		return false
	}
	return correlatedPair(a, b) || correlatedPair(b, a)
}

func correlatedPair(a, b *models.Leg) bool {
	switch {
	case a.IsHomeWin() && b.IsOverAtLeast(overLineThreshold):
		return true
	case a.IsHomeWin() && b.IsBTTSYes():
		return true
	case a.IsOverAtLeast(overLineThreshold) && b.IsBTTSYes():
		return true
	}
	return false
}

// hasCorrelatedPair reports whether any pair of legs in the combination is
// correlated
func hasCorrelatedPair(legs []*models.Leg) bool {
	for i := 0; i < len(legs); i++ {
		for j := i + 1; j < len(legs); j++ {
			if AreCorrelated(legs[i], legs[j]) {
				return true
			}
		}
	}
	return false
}

// FilterForType reduces the pool to the candidates eligible for the given
// parlay type. Multi-game keeps at most the top legs per match by edge;
// single-game keeps the full pool and relies on pairwise evaluation at
// combination-build time.
func FilterForType(pool []*models.Leg, parlayType models.ParlayType) []*models.Leg {
	if parlayType != models.ParlayMultiGame {
		return pool
	}

	byMatch := groupByMatch(pool)
	filtered := make([]*models.Leg, 0, len(pool))
	for _, legs := range byMatch {
		kept := topLegsByEdge(legs, maxLegsPerMatchMulti)
		filtered = append(filtered, kept...)
	}

	// Restore the pool's quality ordering, which grouping discarded
	index := make(map[string]int, len(pool))
	for i, leg := range pool {
		index[leg.ID] = i
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return index[filtered[i].ID] < index[filtered[j].ID]
	})

	return filtered
}

// groupByMatch partitions legs by match, preserving pool order within each
// match
func groupByMatch(pool []*models.Leg) map[string][]*models.Leg {
	byMatch := make(map[string][]*models.Leg)
	for _, leg := range pool {
		byMatch[leg.MatchID] = append(byMatch[leg.MatchID], leg)
	}
	return byMatch
}

// topLegsByEdge returns up to n legs ranked by edge descending, with leg ID
// as a deterministic tie-break
func topLegsByEdge(legs []*models.Leg, n int) []*models.Leg {
	sorted := make([]*models.Leg, len(legs))
	copy(sorted, legs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EdgeConsensus != sorted[j].EdgeConsensus {
			return sorted[i].EdgeConsensus > sorted[j].EdgeConsensus
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
