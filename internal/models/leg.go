package models

import (
	"time"
)

// RiskLevel classifies how volatile a leg's outcome is considered to be
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Weight returns the scoring weight for the risk level.
// Unknown levels fall back to the medium weight.
func (r RiskLevel) Weight() float64 {
	switch r {
	case RiskLow:
		return 1.0
	case RiskMedium:
		return 0.8
	case RiskHigh:
		return 0.6
	default:
		return 0.8
	}
}

// Market type and subtype identifiers used by the correlation rules
const (
	MarketMatchWinner = "1X2"
	MarketTotals      = "TOTALS"
	MarketBTTS        = "BTTS"

	SubtypeHome  = "HOME"
	SubtypeAway  = "AWAY"
	SubtypeDraw  = "DRAW"
	SubtypeOver  = "OVER"
	SubtypeUnder = "UNDER"
	SubtypeYes   = "YES"
	SubtypeNo    = "NO"
)

// Leg represents a single scored betting outcome on one match.
// Legs are read-only snapshots: once fetched for a generation run they are
// filtered and combined, never mutated.
type Leg struct {
	ID                  string     `db:"id" json:"id" validate:"required"`
	MatchID             string     `db:"match_id" json:"match_id" validate:"required"`
	MatchStartsAt       time.Time  `db:"match_starts_at" json:"match_starts_at"`
	MarketType          string     `db:"market_type" json:"market_type" validate:"required"`
	MarketSubtype       string     `db:"market_subtype" json:"market_subtype"`
	Line                *float64   `db:"line" json:"line,omitempty"`
	ConsensusProb       float64    `db:"consensus_prob" json:"consensus_prob" validate:"gt=0,lte=1"`
	ConsensusConfidence float64    `db:"consensus_confidence" json:"consensus_confidence" validate:"gte=0,lte=1"`
	ModelAgreement      float64    `db:"model_agreement" json:"model_agreement" validate:"gte=0,lte=1"`
	EdgeConsensus       float64    `db:"edge_consensus" json:"edge_consensus"`
	RiskLevel           RiskLevel  `db:"risk_level" json:"risk_level"`
	CorrelationTags     []string   `db:"correlation_tags" json:"correlation_tags,omitempty"`
	DecimalOdds         *float64   `db:"decimal_odds" json:"decimal_odds,omitempty"`
	ImpliedProb         *float64   `db:"implied_prob" json:"implied_prob,omitempty"`
}

// IsHomeWin reports whether the leg is a home-win match-winner outcome
func (l *Leg) IsHomeWin() bool {
	return l.MarketType == MarketMatchWinner && l.MarketSubtype == SubtypeHome
}

// IsOverAtLeast reports whether the leg is an Over totals outcome with a line
// at or above the given threshold
func (l *Leg) IsOverAtLeast(minLine float64) bool {
	if l.MarketType != MarketTotals || l.MarketSubtype != SubtypeOver {
		return false
	}
	return l.Line != nil && *l.Line >= minLine
}

// IsBTTSYes reports whether the leg is a "both teams to score: yes" outcome
func (l *Leg) IsBTTSYes() bool {
	return l.MarketType == MarketBTTS && l.MarketSubtype == SubtypeYes
}

// GetDecimalOdds returns the market decimal odds, or 0 when no market data
// was available for the leg
func (l *Leg) GetDecimalOdds() float64 {
	if l.DecimalOdds == nil {
		return 0
	}
	return *l.DecimalOdds
}

// HasMarketOdds reports whether market-derived pricing is present
func (l *Leg) HasMarketOdds() bool {
	return l.DecimalOdds != nil && *l.DecimalOdds > 1.0
}

// HasTag reports whether the leg carries the given correlation tag
func (l *Leg) HasTag(tag string) bool {
	for _, t := range l.CorrelationTags {
		if t == tag {
			return true
		}
	}
	return false
}

// LegFilter describes the server-side filters applied when fetching the
// candidate pool. MinEdge is only applied when greater than zero so that an
// unknown edge (0) never disqualifies a leg.
type LegFilter struct {
	MinProbability float64
	MinAgreement   float64
	MinEdge        float64
	Limit          int
}
