package parlay

import (
	"github.com/yourusername/parlay-engine/internal/models"
)

// Base correlation penalties keyed by leg count. Multi-game penalties are
// milder than single-game ones: legs from different matches are inherently
// less correlated than legs sharing a match.
var (
	multiGamePenalty  = map[int]float64{2: 0.92, 3: 0.90, 4: 0.88, 5: 0.85}
	singleGamePenalty = map[int]float64{2: 0.85, 3: 0.80, 4: 0.75, 5: 0.70}
)

// Extra multiplicative discount applied when any leg pair in the combination
// matches a correlation rule
const (
	correlatedFactorMulti  = 0.95
	correlatedFactorSingle = 0.90
)

// Confidence tier thresholds on (average model agreement, parlay edge)
const (
	tierHighAgreement   = 0.80
	tierHighEdge        = 15.0
	tierMediumAgreement = 0.70
	tierMediumEdge      = 10.0
)

// correlationPenalty looks up the multiplicative discount for a combination.
// Leg counts past the table reuse the deepest entry.
func correlationPenalty(legCount int, isMultiGame, hasCorrelation bool) float64 {
	table := singleGamePenalty
	factor := correlatedFactorSingle
	if isMultiGame {
		table = multiGamePenalty
		factor = correlatedFactorMulti
	}

	base, ok := table[legCount]
	if !ok {
		if legCount > 5 {
			base = table[5]
		} else {
			base = table[2]
		}
	}

	if hasCorrelation {
		base *= factor
	}
	return base
}

// evaluate computes the probability, penalty, odds and edge figures for a
// candidate combination and applies the acceptance thresholds. It returns
// nil when the combination fails a threshold; the quality score is filled in
// by the scorer afterwards.
func evaluate(legs []*models.Leg, parlayType models.ParlayType, cfg GenerationConfig) *models.Combination {
	if len(legs) < 2 {
		return nil
	}

	combinedProb := 1.0
	for _, leg := range legs {
		combinedProb *= leg.ConsensusProb
	}
	if combinedProb <= 0 {
		return nil
	}

	isMultiGame := parlayType == models.ParlayMultiGame
	correlated := hasCorrelatedPair(legs)
	penalty := correlationPenalty(len(legs), isMultiGame, correlated)
	adjustedProb := combinedProb * penalty

	impliedOdds := 1.0 / adjustedProb
	fairOdds := 1.0 / combinedProb
	parlayEdge := (impliedOdds - fairOdds) / fairOdds * 100

	if parlayEdge < cfg.MinParlayEdge || adjustedProb < cfg.MinCombinedProb {
		return nil
	}

	held := make([]*models.Leg, len(legs))
	copy(held, legs)

	c := &models.Combination{
		Legs:               held,
		LegCount:           len(held),
		CombinedProb:       combinedProb,
		CorrelationPenalty: penalty,
		AdjustedProb:       adjustedProb,
		ImpliedOdds:        impliedOdds,
		FairOdds:           fairOdds,
		ParlayEdge:         parlayEdge,
		ParlayType:         parlayType,
		IsMultiGame:        isMultiGame,
	}
	c.MatchIDs = c.DistinctMatchIDs()
	c.ConfidenceTier = confidenceTier(c.AverageAgreement(), parlayEdge)
	return c
}

// confidenceTier derives the tier from average model agreement and edge
func confidenceTier(avgAgreement, parlayEdge float64) models.ConfidenceTier {
	switch {
	case avgAgreement >= tierHighAgreement && parlayEdge >= tierHighEdge:
		return models.TierHigh
	case avgAgreement >= tierMediumAgreement && parlayEdge >= tierMediumEdge:
		return models.TierMedium
	default:
		return models.TierLow
	}
}
