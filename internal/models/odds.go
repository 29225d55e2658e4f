package models

import (
	"github.com/shopspring/decimal"
)

// DecimalOddsFromProbability converts a win probability into decimal odds
// rounded to two places. Returns zero for out-of-range probabilities.
func DecimalOddsFromProbability(prob float64) decimal.Decimal {
	if prob <= 0 || prob > 1 {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromFloat(prob)).Round(2)
}

// ProbabilityFromDecimalOdds converts decimal odds into an implied probability
func ProbabilityFromDecimalOdds(odds decimal.Decimal) float64 {
	if odds.LessThanOrEqual(decimal.NewFromInt(1)) {
		return 0
	}
	p, _ := decimal.NewFromInt(1).Div(odds).Round(4).Float64()
	return p
}

// AmericanFromDecimal converts decimal odds to American odds notation
func AmericanFromDecimal(odds decimal.Decimal) int64 {
	one := decimal.NewFromInt(1)
	if odds.LessThanOrEqual(one) {
		return 0
	}
	two := decimal.NewFromInt(2)
	hundred := decimal.NewFromInt(100)
	if odds.GreaterThanOrEqual(two) {
		return odds.Sub(one).Mul(hundred).Round(0).IntPart()
	}
	return decimal.NewFromInt(-100).Div(odds.Sub(one)).Round(0).IntPart()
}

// ProjectedPayout returns the gross return for a stake at the given decimal odds
func ProjectedPayout(stake, odds decimal.Decimal) decimal.Decimal {
	if stake.IsNegative() || odds.LessThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero
	}
	return stake.Mul(odds).Round(2)
}
