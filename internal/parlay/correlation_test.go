package parlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/parlay-engine/internal/models"
)

func TestAreCorrelated(t *testing.T) {
	line25 := 2.5
	line35 := 3.5
	line15 := 1.5

	homeWin := marketLeg("home", "m1", models.MarketMatchWinner, models.SubtypeHome, nil)
	awayWin := marketLeg("away", "m1", models.MarketMatchWinner, models.SubtypeAway, nil)
	over25 := marketLeg("over25", "m1", models.MarketTotals, models.SubtypeOver, &line25)
	over35 := marketLeg("over35", "m1", models.MarketTotals, models.SubtypeOver, &line35)
	over15 := marketLeg("over15", "m1", models.MarketTotals, models.SubtypeOver, &line15)
	under25 := marketLeg("under25", "m1", models.MarketTotals, models.SubtypeUnder, &line25)
	bttsYes := marketLeg("btts-yes", "m1", models.MarketBTTS, models.SubtypeYes, nil)
	bttsNo := marketLeg("btts-no", "m1", models.MarketBTTS, models.SubtypeNo, nil)
	homeOtherMatch := marketLeg("home-m2", "m2", models.MarketMatchWinner, models.SubtypeHome, nil)
	overOtherMatch := marketLeg("over-m2", "m2", models.MarketTotals, models.SubtypeOver, &line25)

	tests := []struct {
		name string
		a, b *models.Leg
		want bool
	}{
		{"home win with over 2.5", homeWin, over25, true},
		{"home win with over 3.5", homeWin, over35, true},
		{"home win with btts yes", homeWin, bttsYes, true},
		{"over 2.5 with btts yes", over25, bttsYes, true},
		{"home win with over 1.5", homeWin, over15, false},
		{"home win with under 2.5", homeWin, under25, false},
		{"away win with over 2.5", awayWin, over25, false},
		{"home win with btts no", homeWin, bttsNo, false},
		{"different matches", homeWin, overOtherMatch, false},
		{"two match winners across matches", homeWin, homeOtherMatch, false},
		{"nil leg", homeWin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreCorrelated(tt.a, tt.b))
			assert.Equal(t, tt.want, AreCorrelated(tt.b, tt.a), "predicate must be symmetric")
		})
	}
}

func TestHasCorrelatedPair(t *testing.T) {
	line := 2.5
	homeWin := marketLeg("home", "m1", models.MarketMatchWinner, models.SubtypeHome, nil)
	over := marketLeg("over", "m1", models.MarketTotals, models.SubtypeOver, &line)
	neutral := marketLeg("draw", "m1", models.MarketMatchWinner, models.SubtypeDraw, nil)
	otherMatch := marketLeg("home-m2", "m2", models.MarketMatchWinner, models.SubtypeHome, nil)

	assert.True(t, hasCorrelatedPair([]*models.Leg{neutral, homeWin, over}))
	assert.False(t, hasCorrelatedPair([]*models.Leg{neutral, homeWin, otherMatch}))
	assert.False(t, hasCorrelatedPair([]*models.Leg{homeWin}))
	assert.False(t, hasCorrelatedPair(nil))
}

func TestFilterForTypeMultiGame(t *testing.T) {
	// Three legs on m1 with edges 10, 8, 6 and one leg on m2
	a := testLeg("a", "m1", 0.75, 0.9, 10)
	b := testLeg("b", "m1", 0.72, 0.9, 8)
	c := testLeg("c", "m1", 0.70, 0.9, 6)
	d := testLeg("d", "m2", 0.68, 0.9, 9)
	pool := []*models.Leg{a, b, c, d}

	filtered := FilterForType(pool, models.ParlayMultiGame)
	require.Len(t, filtered, 3)

	// The weakest m1 leg is dropped and pool order is preserved
	assert.Equal(t, []string{"a", "b", "d"}, legIDs(filtered))
}

func TestFilterForTypeMultiGameEdgeTieBreak(t *testing.T) {
	a := testLeg("a", "m1", 0.75, 0.9, 8)
	b := testLeg("b", "m1", 0.72, 0.9, 8)
	c := testLeg("c", "m1", 0.70, 0.9, 8)

	filtered := FilterForType([]*models.Leg{c, b, a}, models.ParlayMultiGame)
	require.Len(t, filtered, 2)

	// Equal edges fall back to leg ID, pool order restored afterwards
	assert.Equal(t, []string{"b", "a"}, legIDs(filtered))
}

func TestFilterForTypeSingleGameKeepsPool(t *testing.T) {
	pool := wideLegPool(3)
	filtered := FilterForType(pool, models.ParlaySingleGame)
	assert.Equal(t, pool, filtered)
}

func legIDs(legs []*models.Leg) []string {
	ids := make([]string, len(legs))
	for i, leg := range legs {
		ids[i] = leg.ID
	}
	return ids
}
