// Package parlay implements the parlay combination generator: candidate pool
// construction, correlation filtering, bounded combinatorial enumeration,
// probability/edge calculation, quality scoring and ranking.
package parlay

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/parlay-engine/internal/models"
)

// TypeBoth requests both multi-game and single-game generation in one run
const TypeBoth = "both"

// Default generation parameters
const (
	DefaultMinLegEdge          = 0.0
	DefaultMinParlayEdge       = 5.0
	DefaultMinCombinedProb     = 0.15
	DefaultMaxLegCount         = 5
	DefaultMinModelAgreement   = 0.65
	DefaultMaxResultsPerBucket = 20
)

// GenerationConfig holds the per-run parameters of the generator. All fields
// are optional on input; Normalize fills documented defaults for unset values
// and Validate fails fast on out-of-range values before any work is done.
type GenerationConfig struct {
	MinLegEdge          float64 `mapstructure:"min_leg_edge" json:"min_leg_edge" validate:"gte=0"`
	MinParlayEdge       float64 `mapstructure:"min_parlay_edge" json:"min_parlay_edge" validate:"gte=0"`
	MinCombinedProb     float64 `mapstructure:"min_combined_prob" json:"min_combined_prob" validate:"gte=0,lte=1"`
	MaxLegCount         int     `mapstructure:"max_leg_count" json:"max_leg_count" validate:"gte=2,lte=8"`
	MinModelAgreement   float64 `mapstructure:"min_model_agreement" json:"min_model_agreement" validate:"gte=0,lte=1"`
	MaxResultsPerBucket int     `mapstructure:"max_results_per_bucket" json:"max_results_per_bucket" validate:"gt=0"`
	ParlayType          string  `mapstructure:"parlay_type" json:"parlay_type" validate:"oneof=multi_game single_game both"`
}

// DefaultGenerationConfig returns the documented default configuration
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MinLegEdge:          DefaultMinLegEdge,
		MinParlayEdge:       DefaultMinParlayEdge,
		MinCombinedProb:     DefaultMinCombinedProb,
		MaxLegCount:         DefaultMaxLegCount,
		MinModelAgreement:   DefaultMinModelAgreement,
		MaxResultsPerBucket: DefaultMaxResultsPerBucket,
		ParlayType:          TypeBoth,
	}
}

// Normalize fills unset (zero-valued) fields with their defaults. A zero
// MinLegEdge is a valid setting and is left as-is.
func (c GenerationConfig) Normalize() GenerationConfig {
	if c.MinParlayEdge == 0 {
		c.MinParlayEdge = DefaultMinParlayEdge
	}
	if c.MinCombinedProb == 0 {
		c.MinCombinedProb = DefaultMinCombinedProb
	}
	if c.MaxLegCount == 0 {
		c.MaxLegCount = DefaultMaxLegCount
	}
	if c.MinModelAgreement == 0 {
		c.MinModelAgreement = DefaultMinModelAgreement
	}
	if c.MaxResultsPerBucket == 0 {
		c.MaxResultsPerBucket = DefaultMaxResultsPerBucket
	}
	if c.ParlayType == "" {
		c.ParlayType = TypeBoth
	}
	return c
}

var configValidator = validator.New()

// Validate checks the configuration for out-of-range values
func (c GenerationConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
	}
	return nil
}

// Types returns the parlay types this configuration requests, in the fixed
// generation order multi_game then single_game
func (c GenerationConfig) Types() []models.ParlayType {
	switch c.ParlayType {
	case string(models.ParlayMultiGame):
		return []models.ParlayType{models.ParlayMultiGame}
	case string(models.ParlaySingleGame):
		return []models.ParlayType{models.ParlaySingleGame}
	default:
		return []models.ParlayType{models.ParlayMultiGame, models.ParlaySingleGame}
	}
}

// Fingerprint returns a stable identifier for the configuration, used for
// result caching and tagging persisted parlays
func (c GenerationConfig) Fingerprint() string {
	return fmt.Sprintf("le%.2f:pe%.2f:cp%.3f:ml%d:ma%.2f:rb%d:%s",
		c.MinLegEdge, c.MinParlayEdge, c.MinCombinedProb,
		c.MaxLegCount, c.MinModelAgreement, c.MaxResultsPerBucket, c.ParlayType)
}
