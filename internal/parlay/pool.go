package parlay

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/parlay-engine/internal/models"
)

// Pool bounds, chosen to keep downstream combinatorial cost predictable
const (
	maxPoolSize        = 100
	minPoolProbability = 0.50
)

// LegSource supplies candidate legs for future, active matches. The only
// implementation in this repository is the Postgres leg repository; tests
// substitute in-memory stubs.
type LegSource interface {
	GetCandidates(ctx context.Context, filter models.LegFilter) ([]*models.Leg, error)
}

// PoolBuilder fetches and bounds the candidate leg pool for a run
type PoolBuilder struct {
	legs   LegSource
	logger *logrus.Logger
}

// NewPoolBuilder creates a pool builder over the given leg source
func NewPoolBuilder(legs LegSource, logger *logrus.Logger) *PoolBuilder {
	return &PoolBuilder{legs: legs, logger: logger}
}

// Build returns the candidate pool for the configuration. An empty pool is a
// normal result: it means no parlays are generatable this run, not a fault.
func (b *PoolBuilder) Build(ctx context.Context, cfg GenerationConfig) ([]*models.Leg, error) {
	filter := models.LegFilter{
		MinProbability: minPoolProbability,
		MinAgreement:   cfg.MinModelAgreement,
		MinEdge:        cfg.MinLegEdge,
		Limit:          maxPoolSize,
	}

	pool, err := b.legs.GetCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate legs: %w", err)
	}

	if b.logger != nil {
		b.logger.WithFields(logrus.Fields{
			"pool_size":     len(pool),
			"min_agreement": cfg.MinModelAgreement,
			"min_leg_edge":  cfg.MinLegEdge,
		}).Debug("Candidate pool built")
	}

	return pool, nil
}
