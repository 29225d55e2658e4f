package parlay

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/parlay-engine/internal/models"
)

// testLeg builds a valid medium-risk leg with sensible defaults for the
// fields a test does not care about.
func testLeg(id, matchID string, prob, agreement, edge float64) *models.Leg {
	return &models.Leg{
		ID:                  id,
		MatchID:             matchID,
		MatchStartsAt:       time.Now().Add(2 * time.Hour),
		MarketType:          models.MarketMatchWinner,
		MarketSubtype:       models.SubtypeHome,
		ConsensusProb:       prob,
		ConsensusConfidence: 0.8,
		ModelAgreement:      agreement,
		EdgeConsensus:       edge,
		RiskLevel:           models.RiskMedium,
	}
}

func marketLeg(id, matchID, marketType, subtype string, line *float64) *models.Leg {
	leg := testLeg(id, matchID, 0.70, 0.85, 8.0)
	leg.MarketType = marketType
	leg.MarketSubtype = subtype
	leg.Line = line
	return leg
}

// stubLegSource serves a fixed leg list, applying the same server-side
// filter semantics as the Postgres repository.
type stubLegSource struct {
	legs  []*models.Leg
	err   error
	calls int
}

func (s *stubLegSource) GetCandidates(_ context.Context, filter models.LegFilter) ([]*models.Leg, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	var out []*models.Leg
	for _, leg := range s.legs {
		if leg.ConsensusProb < filter.MinProbability {
			continue
		}
		if leg.ModelAgreement < filter.MinAgreement {
			continue
		}
		if filter.MinEdge > 0 && leg.EdgeConsensus < filter.MinEdge {
			continue
		}
		out = append(out, leg)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// wideLegPool returns legs spread across the given number of matches, three
// legs per match with distinct markets, sorted best-first the way the
// repository orders its results.
func wideLegPool(matches int) []*models.Leg {
	line := 2.5
	var pool []*models.Leg
	for i := 0; i < matches; i++ {
		matchID := fmt.Sprintf("match-%02d", i)
		prob := 0.78 - float64(i)*0.01
		agreement := 0.90 - float64(i)*0.005
		edge := 12.0 - float64(i)*0.2

		winner := testLeg(fmt.Sprintf("leg-%02d-win", i), matchID, prob, agreement, edge)
		over := marketLeg(fmt.Sprintf("leg-%02d-over", i), matchID, models.MarketTotals, models.SubtypeOver, &line)
		over.ConsensusProb = prob - 0.05
		over.ModelAgreement = agreement - 0.02
		over.EdgeConsensus = edge - 1.0
		btts := marketLeg(fmt.Sprintf("leg-%02d-btts", i), matchID, models.MarketBTTS, models.SubtypeYes, nil)
		btts.ConsensusProb = prob - 0.08
		btts.ModelAgreement = agreement - 0.04
		btts.EdgeConsensus = edge - 2.0

		pool = append(pool, winner, over, btts)
	}
	return pool
}
