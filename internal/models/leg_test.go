package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestRiskLevelWeight(t *testing.T) {
	assert.Equal(t, 1.0, RiskLow.Weight())
	assert.Equal(t, 0.8, RiskMedium.Weight())
	assert.Equal(t, 0.6, RiskHigh.Weight())
	assert.Equal(t, 0.8, RiskLevel("unknown").Weight())
	assert.Equal(t, 0.8, RiskLevel("").Weight())
}

func TestLegMarketPredicates(t *testing.T) {
	homeWin := &Leg{MarketType: MarketMatchWinner, MarketSubtype: SubtypeHome}
	assert.True(t, homeWin.IsHomeWin())
	assert.False(t, homeWin.IsBTTSYes())
	assert.False(t, homeWin.IsOverAtLeast(2.5))

	awayWin := &Leg{MarketType: MarketMatchWinner, MarketSubtype: SubtypeAway}
	assert.False(t, awayWin.IsHomeWin())

	over25 := &Leg{MarketType: MarketTotals, MarketSubtype: SubtypeOver, Line: floatPtr(2.5)}
	assert.True(t, over25.IsOverAtLeast(2.5))
	assert.False(t, over25.IsOverAtLeast(3.5))

	over35 := &Leg{MarketType: MarketTotals, MarketSubtype: SubtypeOver, Line: floatPtr(3.5)}
	assert.True(t, over35.IsOverAtLeast(2.5))

	overNoLine := &Leg{MarketType: MarketTotals, MarketSubtype: SubtypeOver}
	assert.False(t, overNoLine.IsOverAtLeast(2.5))

	under := &Leg{MarketType: MarketTotals, MarketSubtype: SubtypeUnder, Line: floatPtr(2.5)}
	assert.False(t, under.IsOverAtLeast(2.5))

	bttsYes := &Leg{MarketType: MarketBTTS, MarketSubtype: SubtypeYes}
	assert.True(t, bttsYes.IsBTTSYes())

	bttsNo := &Leg{MarketType: MarketBTTS, MarketSubtype: SubtypeNo}
	assert.False(t, bttsNo.IsBTTSYes())
}

func TestLegMarketOdds(t *testing.T) {
	bare := &Leg{}
	assert.False(t, bare.HasMarketOdds())
	assert.Equal(t, 0.0, bare.GetDecimalOdds())

	priced := &Leg{DecimalOdds: floatPtr(1.85)}
	assert.True(t, priced.HasMarketOdds())
	assert.Equal(t, 1.85, priced.GetDecimalOdds())

	degenerate := &Leg{DecimalOdds: floatPtr(1.0)}
	assert.False(t, degenerate.HasMarketOdds())
}

func TestLegHasTag(t *testing.T) {
	leg := &Leg{CorrelationTags: []string{"attacking", "derby"}}
	assert.True(t, leg.HasTag("derby"))
	assert.False(t, leg.HasTag("defensive"))

	bare := &Leg{}
	assert.False(t, bare.HasTag("anything"))
}
