package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/parlay-engine/internal/models"
)

// LegRepository defines read access to scored prediction legs. Candidates
// are always scoped to future, active matches; the filter narrows them by
// the quality thresholds a run configures.
type LegRepository interface {
	GetCandidates(ctx context.Context, filter models.LegFilter) ([]*models.Leg, error)
	GetByMatchID(ctx context.Context, matchID string) ([]*models.Leg, error)
}

// ParlayRepository defines persistence for generated parlays
type ParlayRepository interface {
	InsertBatch(ctx context.Context, parlays []*models.Parlay) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.Parlay, error)
	GetLatest(ctx context.Context, limit int) ([]*models.Parlay, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
