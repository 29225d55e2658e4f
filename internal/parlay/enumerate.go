package parlay

import (
	"sort"

	"github.com/yourusername/parlay-engine/internal/models"
)

// Exploration caps. The search is deliberately incomplete: pool legs are
// pre-sorted by quality, so bounding the walk still surfaces the strongest
// candidates while keeping runtime and memory predictable.
const (
	maxMatchesMultiGame    = 20
	maxLegsPerMatchSingle  = 10
	maxExaminedPerLegCount = 5000
	maxExaminedPerType     = 10000
)

// searchBudget tracks how many complete combinations one parlay type's walk
// has examined. Each type gets its own budget, so a match-heavy pool that
// saturates the multi-game walk cannot starve single-game generation.
// Hitting a cap ends the walk early; it is not an error.
type searchBudget struct {
	legCountUsed int
	totalUsed    int
}

func newSearchBudget() *searchBudget {
	return &searchBudget{}
}

// nextLegCount resets the per-leg-count allowance
func (b *searchBudget) nextLegCount() {
	b.legCountUsed = 0
}

// take consumes one examination slot, returning false when exhausted
func (b *searchBudget) take() bool {
	if b.legCountUsed >= maxExaminedPerLegCount || b.totalUsed >= maxExaminedPerType {
		return false
	}
	b.legCountUsed++
	b.totalUsed++
	return true
}

func (b *searchBudget) exhausted() bool {
	return b.totalUsed >= maxExaminedPerType
}

// visitFunc receives candidate combinations one at a time. The slice is only
// valid for the duration of the call. Returning false stops the search.
type visitFunc func(legs []*models.Leg) bool

// enumerateMultiGame walks legCount-sized combinations with one leg per
// distinct match. The search considers at most maxMatchesMultiGame matches
// and only the best (highest-edge) leg of each, bounding the space to
// C(20, legCount) tuples before the examination caps apply.
func enumerateMultiGame(candidates []*models.Leg, legCount int, budget *searchBudget, visit visitFunc) {
	items := bestLegPerMatch(candidates)
	if len(items) > maxMatchesMultiGame {
		items = items[:maxMatchesMultiGame]
	}
	if len(items) < legCount {
		return
	}
	combinations(items, legCount, budget, visit)
}

// enumerateSingleGame partitions legs by match and enumerates sub-combinations
// within each match that has enough legs, capping each match at its top legs
// by edge. The per-match searches share no state beyond the budget; each
// produces its own sequence, merged by the caller in match order.
func enumerateSingleGame(candidates []*models.Leg, legCount int, budget *searchBudget, visit visitFunc) {
	byMatch := groupByMatch(candidates)
	for _, matchID := range matchOrder(candidates) {
		legs := byMatch[matchID]
		if len(legs) < legCount {
			continue
		}
		legs = topLegsByEdge(legs, maxLegsPerMatchSingle)
		if len(legs) < legCount {
			continue
		}
		if !combinations(legs, legCount, budget, visit) {
			return
		}
	}
}

// combinations walks all k-sized index combinations of items in lexicographic
// order using an explicit stack, so call depth and memory stay bounded for
// any pool size. Returns false when the budget ran out or the visitor stopped
// the walk.
func combinations(items []*models.Leg, k int, budget *searchBudget, visit visitFunc) bool {
	type frame struct {
		next   int
		chosen []int
	}

	stack := []frame{{next: 0, chosen: nil}}
	scratch := make([]*models.Leg, k)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.chosen) == k {
			if !budget.take() {
				return false
			}
			for i, idx := range f.chosen {
				scratch[i] = items[idx]
			}
			if !visit(scratch) {
				return false
			}
			continue
		}

		need := k - len(f.chosen)
		// Push children in reverse so the lowest index is explored first
		for i := len(items) - need; i >= f.next; i-- {
			chosen := make([]int, len(f.chosen), len(f.chosen)+1)
			copy(chosen, f.chosen)
			stack = append(stack, frame{next: i + 1, chosen: append(chosen, i)})
		}
	}

	return true
}

// bestLegPerMatch reduces the pool to a single highest-edge leg per match,
// ordered by edge descending with match ID as a deterministic tie-break
func bestLegPerMatch(pool []*models.Leg) []*models.Leg {
	best := make(map[string]*models.Leg)
	for _, leg := range pool {
		current, ok := best[leg.MatchID]
		if !ok || leg.EdgeConsensus > current.EdgeConsensus {
			best[leg.MatchID] = leg
		}
	}

	items := make([]*models.Leg, 0, len(best))
	for _, leg := range best {
		items = append(items, leg)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].EdgeConsensus != items[j].EdgeConsensus {
			return items[i].EdgeConsensus > items[j].EdgeConsensus
		}
		return items[i].MatchID < items[j].MatchID
	})
	return items
}

// matchOrder returns match IDs in first-seen pool order, which follows the
// repository's quality ordering
func matchOrder(pool []*models.Leg) []string {
	seen := make(map[string]struct{}, len(pool))
	order := make([]string, 0, len(pool))
	for _, leg := range pool {
		if _, ok := seen[leg.MatchID]; ok {
			continue
		}
		seen[leg.MatchID] = struct{}{}
		order = append(order, leg.MatchID)
	}
	return order
}
