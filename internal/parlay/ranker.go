package parlay

import (
	"sort"

	"github.com/yourusername/parlay-engine/internal/models"
)

// scoreTieThreshold is the quality-score gap under which two combinations
// are considered tied and ranked by edge instead
const scoreTieThreshold = 0.1

// rank sorts the accepted combinations by quality score (ties broken by
// parlay edge), caps each leg-count bucket, and returns the flattened,
// re-sorted result. The global sort runs before bucketing so the survivors
// of each bucket are always its best-scoring members.
func rank(combos []*models.Combination, cfg GenerationConfig) []*models.Combination {
	if len(combos) == 0 {
		return nil
	}

	sorted := make([]*models.Combination, len(combos))
	copy(sorted, combos)
	sortByQuality(sorted)

	buckets := make(map[int]int, cfg.MaxLegCount)
	kept := make([]*models.Combination, 0, len(sorted))
	for _, c := range sorted {
		if buckets[c.LegCount] >= cfg.MaxResultsPerBucket {
			continue
		}
		buckets[c.LegCount]++
		kept = append(kept, c)
	}

	sortByQuality(kept)
	return kept
}

func sortByQuality(combos []*models.Combination) {
	sort.SliceStable(combos, func(i, j int) bool {
		di := combos[i].QualityScore - combos[j].QualityScore
		if di > scoreTieThreshold {
			return true
		}
		if di < -scoreTieThreshold {
			return false
		}
		return combos[i].ParlayEdge > combos[j].ParlayEdge
	})
}
