package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCombination() *Combination {
	return &Combination{
		Legs: []*Leg{
			{ID: "a", MatchID: "m1", ConsensusProb: 0.70, ModelAgreement: 0.90, RiskLevel: RiskLow},
			{ID: "b", MatchID: "m2", ConsensusProb: 0.65, ModelAgreement: 0.80, RiskLevel: RiskHigh},
		},
		LegCount:           2,
		CombinedProb:       0.455,
		CorrelationPenalty: 0.92,
		AdjustedProb:       0.4186,
		ImpliedOdds:        1 / 0.4186,
		FairOdds:           1 / 0.455,
		ParlayEdge:         8.7,
		QualityScore:       55.5,
		ConfidenceTier:     TierMedium,
		ParlayType:         ParlayMultiGame,
		IsMultiGame:        true,
		MatchIDs:           []string{"m1", "m2"},
	}
}

func TestCombinationAccessors(t *testing.T) {
	c := testCombination()

	assert.Equal(t, []string{"a", "b"}, c.LegIDs())
	assert.InDelta(t, 0.85, c.AverageAgreement(), 1e-9)
	assert.InDelta(t, 0.8, c.AverageRiskWeight(), 1e-9)

	empty := &Combination{}
	assert.Zero(t, empty.AverageAgreement())
	assert.Zero(t, empty.AverageRiskWeight())
}

func TestDistinctMatchIDs(t *testing.T) {
	c := &Combination{
		Legs: []*Leg{
			{ID: "a", MatchID: "m2"},
			{ID: "b", MatchID: "m1"},
			{ID: "c", MatchID: "m2"},
		},
	}
	assert.Equal(t, []string{"m2", "m1"}, c.DistinctMatchIDs(), "first-seen order is preserved")
}

func TestCombinationDisplayOdds(t *testing.T) {
	c := testCombination()
	// 1 / 0.4186 = 2.3889..., rounded to two places
	assert.Equal(t, "2.39", c.DisplayOdds().StringFixed(2))
}

func TestNewParlayRecord(t *testing.T) {
	runID := uuid.New()
	c := testCombination()

	record, err := NewParlayRecord(runID, "fp-1", c)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, runID, record.RunID)
	assert.Equal(t, "fp-1", record.ConfigFingerprint)
	assert.Equal(t, ParlayMultiGame, record.ParlayType)
	assert.Equal(t, 2, record.LegCount)
	assert.Equal(t, c.QualityScore, record.QualityScore)
	assert.Equal(t, TierMedium, record.ConfidenceTier)
	assert.False(t, record.GeneratedAt.IsZero())

	legs, err := record.ParseLegs()
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, "a", legs[0].ID)
	assert.Equal(t, 0.70, legs[0].ConsensusProb)
}

func TestNewParlayRecordRejectsTooFewLegs(t *testing.T) {
	c := testCombination()
	c.LegCount = 1
	c.Legs = c.Legs[:1]

	_, err := NewParlayRecord(uuid.New(), "fp-1", c)
	assert.ErrorIs(t, err, ErrTooFewLegs)
}

func TestParseLegsWithoutSnapshot(t *testing.T) {
	p := &Parlay{}
	_, err := p.ParseLegs()
	assert.ErrorIs(t, err, ErrInvalidLeg)
}
