package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParlayType distinguishes combinations built across matches from
// combinations built within a single match
type ParlayType string

const (
	ParlayMultiGame  ParlayType = "multi_game"
	ParlaySingleGame ParlayType = "single_game"
)

// ConfidenceTier buckets a combination by average model agreement and edge
type ConfidenceTier string

const (
	TierLow    ConfidenceTier = "low"
	TierMedium ConfidenceTier = "medium"
	TierHigh   ConfidenceTier = "high"
)

// Combination represents a candidate parlay produced by a generation run.
// It is a derived value: it only becomes a persisted Parlay record once a
// run accepts and ranks it.
type Combination struct {
	Legs               []*Leg         `json:"legs"`
	LegCount           int            `json:"leg_count"`
	CombinedProb       float64        `json:"combined_prob"`
	CorrelationPenalty float64        `json:"correlation_penalty"`
	AdjustedProb       float64        `json:"adjusted_prob"`
	ImpliedOdds        float64        `json:"implied_odds"`
	FairOdds           float64        `json:"fair_odds"`
	ParlayEdge         float64        `json:"parlay_edge"`
	QualityScore       float64        `json:"quality_score"`
	ConfidenceTier     ConfidenceTier `json:"confidence_tier"`
	ParlayType         ParlayType     `json:"parlay_type"`
	IsMultiGame        bool           `json:"is_multi_game"`
	MatchIDs           []string       `json:"match_ids"`
}

// LegIDs returns the leg identifiers in combination order
func (c *Combination) LegIDs() []string {
	ids := make([]string, len(c.Legs))
	for i, leg := range c.Legs {
		ids[i] = leg.ID
	}
	return ids
}

// AverageAgreement returns the mean model agreement across legs
func (c *Combination) AverageAgreement() float64 {
	if len(c.Legs) == 0 {
		return 0
	}
	var sum float64
	for _, leg := range c.Legs {
		sum += leg.ModelAgreement
	}
	return sum / float64(len(c.Legs))
}

// AverageRiskWeight returns the mean per-leg risk weight
func (c *Combination) AverageRiskWeight() float64 {
	if len(c.Legs) == 0 {
		return 0
	}
	var sum float64
	for _, leg := range c.Legs {
		sum += leg.RiskLevel.Weight()
	}
	return sum / float64(len(c.Legs))
}

// DistinctMatchIDs returns the distinct match identifiers touched by the
// legs, preserving first-seen order
func (c *Combination) DistinctMatchIDs() []string {
	seen := make(map[string]struct{}, len(c.Legs))
	ids := make([]string, 0, len(c.Legs))
	for _, leg := range c.Legs {
		if _, ok := seen[leg.MatchID]; ok {
			continue
		}
		seen[leg.MatchID] = struct{}{}
		ids = append(ids, leg.MatchID)
	}
	return ids
}

// DisplayOdds returns the implied odds rounded to a bookmaker-style decimal
// price for the adjusted probability
func (c *Combination) DisplayOdds() decimal.Decimal {
	return DecimalOddsFromProbability(c.AdjustedProb)
}

// Parlay is the persisted form of an accepted combination
type Parlay struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	RunID             uuid.UUID       `db:"run_id" json:"run_id"`
	ConfigFingerprint string          `db:"config_fingerprint" json:"config_fingerprint"`
	ParlayType        ParlayType      `db:"parlay_type" json:"parlay_type"`
	LegCount          int             `db:"leg_count" json:"leg_count"`
	CombinedProb      float64         `db:"combined_prob" json:"combined_prob"`
	AdjustedProb      float64         `db:"adjusted_prob" json:"adjusted_prob"`
	ParlayEdge        float64         `db:"parlay_edge" json:"parlay_edge"`
	QualityScore      float64         `db:"quality_score" json:"quality_score"`
	ConfidenceTier    ConfidenceTier  `db:"confidence_tier" json:"confidence_tier"`
	DisplayOdds       decimal.Decimal `db:"display_odds" json:"display_odds"`
	Legs              json.RawMessage `db:"legs" json:"legs"`
	GeneratedAt       time.Time       `db:"generated_at" json:"generated_at"`
}

// NewParlayRecord builds a persistable record from an accepted combination
func NewParlayRecord(runID uuid.UUID, fingerprint string, c *Combination) (*Parlay, error) {
	if c.LegCount < 2 {
		return nil, ErrTooFewLegs
	}
	legs, err := json.Marshal(c.Legs)
	if err != nil {
		return nil, err
	}
	return &Parlay{
		ID:                uuid.New(),
		RunID:             runID,
		ConfigFingerprint: fingerprint,
		ParlayType:        c.ParlayType,
		LegCount:          c.LegCount,
		CombinedProb:      c.CombinedProb,
		AdjustedProb:      c.AdjustedProb,
		ParlayEdge:        c.ParlayEdge,
		QualityScore:      c.QualityScore,
		ConfidenceTier:    c.ConfidenceTier,
		DisplayOdds:       c.DisplayOdds(),
		Legs:              legs,
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

// ParseLegs unmarshals the persisted leg snapshot
func (p *Parlay) ParseLegs() ([]*Leg, error) {
	if p.Legs == nil {
		return nil, ErrInvalidLeg
	}
	var legs []*Leg
	if err := json.Unmarshal(p.Legs, &legs); err != nil {
		return nil, err
	}
	return legs, nil
}
