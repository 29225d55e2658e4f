package parlay

import (
	"math"

	"github.com/yourusername/parlay-engine/internal/models"
)

// Quality score component weights. The components are individually capped
// before weighting, so the total is naturally bounded to [0, 100].
const (
	edgeWeight      = 35.0
	edgeCap         = 50.0
	probWeight      = 0.25
	agreementWeight = 20.0
	riskWeight      = 10.0

	diversifiedPoints  = 10.0
	concentratedPoints = 5.0
)

// score reduces a combination to a single 0..100 ranking value from edge,
// adjusted probability, model agreement, diversification and risk
func score(c *models.Combination) float64 {
	edgeComponent := math.Min(c.ParlayEdge, edgeCap) / edgeCap * edgeWeight
	probComponent := math.Min(c.AdjustedProb*100, 100) * probWeight
	agreementComponent := c.AverageAgreement() * agreementWeight
	riskComponent := c.AverageRiskWeight() * riskWeight

	return edgeComponent + probComponent + agreementComponent + diversification(c) + riskComponent
}

// diversification rewards spreading legs across matches. Multi-game
// combinations hold one leg per match by construction; single-game
// combinations always carry concentrated risk.
func diversification(c *models.Combination) float64 {
	if !c.IsMultiGame {
		return concentratedPoints
	}
	if len(c.MatchIDs) == c.LegCount {
		return diversifiedPoints
	}
	return concentratedPoints
}
