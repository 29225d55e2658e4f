package parlay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/parlay-engine/internal/models"
)

func newTestGenerator(legs []*models.Leg) (*Generator, *stubLegSource) {
	source := &stubLegSource{legs: legs}
	return NewGenerator(source, nil), source
}

func TestGenerateEmptyPool(t *testing.T) {
	gen, _ := newTestGenerator(nil)

	combos, err := gen.Generate(context.Background(), DefaultGenerationConfig())
	require.NoError(t, err)
	assert.Empty(t, combos)
}

func TestGenerateSourceErrorPropagates(t *testing.T) {
	source := &stubLegSource{err: errors.New("connection refused")}
	gen := NewGenerator(source, nil)

	combos, err := gen.Generate(context.Background(), DefaultGenerationConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, combos)
}

func TestGenerateInvalidConfig(t *testing.T) {
	gen, source := newTestGenerator(wideLegPool(4))

	cfg := DefaultGenerationConfig()
	cfg.MaxLegCount = 1

	_, err := gen.Generate(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
	assert.Zero(t, source.calls, "invalid config must fail before any repository read")
}

func TestGenerateMultiGameNeedsDistinctMatches(t *testing.T) {
	// Three legs, all on one match
	legs := []*models.Leg{
		testLeg("a", "m1", 0.75, 0.9, 10),
		testLeg("b", "m1", 0.72, 0.9, 8),
		testLeg("c", "m1", 0.70, 0.9, 6),
	}
	gen, _ := newTestGenerator(legs)

	cfg := DefaultGenerationConfig()
	cfg.ParlayType = string(models.ParlayMultiGame)
	cfg.MaxLegCount = 2

	combos, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, combos)
}

func TestGenerateTwoLegScenario(t *testing.T) {
	legs := []*models.Leg{
		testLeg("A", "1", 0.70, 0.90, 8),
		testLeg("B", "2", 0.65, 0.85, 7),
	}
	gen, _ := newTestGenerator(legs)

	cfg := DefaultGenerationConfig()
	cfg.ParlayType = string(models.ParlayMultiGame)

	combos, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, combos, 1)

	c := combos[0]
	assert.ElementsMatch(t, []string{"A", "B"}, c.LegIDs())
	assert.InDelta(t, 0.455, c.CombinedProb, 1e-9)
	assert.InDelta(t, 0.4186, c.AdjustedProb, 1e-9)
	assert.Greater(t, c.ParlayEdge, 5.0)
	assert.Equal(t, models.TierLow, c.ConfidenceTier)
	assert.Positive(t, c.QualityScore)
}

func TestGenerateLowAgreementPoolIsEmpty(t *testing.T) {
	legs := []*models.Leg{
		testLeg("a", "m1", 0.75, 0.50, 10),
		testLeg("b", "m2", 0.72, 0.50, 8),
		testLeg("c", "m3", 0.70, 0.50, 6),
	}
	gen, _ := newTestGenerator(legs)

	combos, err := gen.Generate(context.Background(), DefaultGenerationConfig())
	require.NoError(t, err)
	assert.Empty(t, combos, "legs below the agreement threshold never reach enumeration")
}

func TestGenerateDeterministic(t *testing.T) {
	gen, _ := newTestGenerator(wideLegPool(12))
	cfg := DefaultGenerationConfig()

	first, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	for run := 0; run < 3; run++ {
		again, err := gen.Generate(context.Background(), cfg)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for i := range first {
			assert.Equal(t, first[i].LegIDs(), again[i].LegIDs(), "run %d position %d", run, i)
			assert.Equal(t, first[i].QualityScore, again[i].QualityScore)
			assert.Equal(t, first[i].ParlayType, again[i].ParlayType)
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	gen, _ := newTestGenerator(wideLegPool(15))

	cfg := DefaultGenerationConfig()
	cfg.MaxResultsPerBucket = 5

	combos, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, combos)

	buckets := map[int]int{}
	for _, c := range combos {
		// Threshold enforcement
		assert.GreaterOrEqual(t, c.ParlayEdge, cfg.MinParlayEdge)
		assert.GreaterOrEqual(t, c.AdjustedProb, cfg.MinCombinedProb)

		// Probability monotonicity
		assert.LessOrEqual(t, c.AdjustedProb, c.CombinedProb)
		minLegProb := 1.0
		for _, leg := range c.Legs {
			if leg.ConsensusProb < minLegProb {
				minLegProb = leg.ConsensusProb
			}
		}
		assert.LessOrEqual(t, c.CombinedProb, minLegProb)

		// Leg count and duplicate legs
		assert.GreaterOrEqual(t, c.LegCount, 2)
		assert.LessOrEqual(t, c.LegCount, cfg.MaxLegCount)
		assert.Equal(t, c.LegCount, len(c.Legs))
		ids := map[string]struct{}{}
		for _, leg := range c.Legs {
			ids[leg.ID] = struct{}{}
		}
		assert.Len(t, ids, c.LegCount, "duplicate leg IDs in combination")

		// Match distinctness per parlay type
		if c.IsMultiGame {
			assert.Len(t, c.MatchIDs, c.LegCount, "multi-game legs must come from distinct matches")
		} else {
			assert.Len(t, c.MatchIDs, 1, "single-game legs must share one match")
		}

		// Score bound
		assert.GreaterOrEqual(t, c.QualityScore, 0.0)
		assert.LessOrEqual(t, c.QualityScore, 100.0)

		buckets[c.LegCount]++
	}

	// Bucket cap
	for legCount, n := range buckets {
		assert.LessOrEqual(t, n, cfg.MaxResultsPerBucket, "leg count %d over bucket cap", legCount)
	}

	// Ordering: quality score descending with the tie threshold
	for i := 1; i < len(combos); i++ {
		assert.LessOrEqual(t, combos[i].QualityScore-combos[i-1].QualityScore, scoreTieThreshold)
	}
}

func TestGenerateSingleGameOnly(t *testing.T) {
	gen, _ := newTestGenerator(wideLegPool(6))

	cfg := DefaultGenerationConfig()
	cfg.ParlayType = string(models.ParlaySingleGame)
	cfg.MinCombinedProb = 0.05

	combos, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, combos)

	for _, c := range combos {
		assert.Equal(t, models.ParlaySingleGame, c.ParlayType)
		assert.False(t, c.IsMultiGame)
		assert.Len(t, c.MatchIDs, 1)
	}
}

func TestGenerateBothTypes(t *testing.T) {
	gen, source := newTestGenerator(wideLegPool(8))

	cfg := DefaultGenerationConfig()
	cfg.MinCombinedProb = 0.05

	combos, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, combos)
	assert.Equal(t, 1, source.calls, "one repository read per run")

	types := map[models.ParlayType]int{}
	for _, c := range combos {
		types[c.ParlayType]++
	}
	assert.Positive(t, types[models.ParlayMultiGame])
	assert.Positive(t, types[models.ParlaySingleGame])
}

func TestGenerateBothTypesLargePool(t *testing.T) {
	// Enough matches for the multi-game walk to saturate its own budget
	// (C(20,2)+C(20,3)+C(20,4) alone exceeds half of it); single-game must
	// still produce results from its separate budget.
	gen, _ := newTestGenerator(wideLegPool(30))

	combos, err := gen.Generate(context.Background(), DefaultGenerationConfig())
	require.NoError(t, err)
	require.NotEmpty(t, combos)

	types := map[models.ParlayType]int{}
	for _, c := range combos {
		types[c.ParlayType]++
	}
	assert.Positive(t, types[models.ParlayMultiGame])
	assert.Positive(t, types[models.ParlaySingleGame],
		"a match-heavy pool must not starve single-game generation")
}

func TestGenerateNormalizesZeroConfig(t *testing.T) {
	gen, _ := newTestGenerator(wideLegPool(4))

	combos, err := gen.Generate(context.Background(), GenerationConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, combos)
}
