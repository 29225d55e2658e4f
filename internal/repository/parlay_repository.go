package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/models"
)

// PostgresParlayRepository implements ParlayRepository for PostgreSQL
type PostgresParlayRepository struct {
	db *database.DB
}

// NewPostgresParlayRepository creates a new parlay repository
func NewPostgresParlayRepository(db *database.DB) ParlayRepository {
	return &PostgresParlayRepository{db: db}
}

var parlayColumns = []string{
	"id", "run_id", "config_fingerprint", "parlay_type", "leg_count",
	"combined_prob", "adjusted_prob", "parlay_edge", "quality_score",
	"confidence_tier", "display_odds", "legs", "generated_at",
}

// InsertBatch persists generated parlays using a bulk COPY
func (r *PostgresParlayRepository) InsertBatch(ctx context.Context, parlays []*models.Parlay) error {
	if len(parlays) == 0 {
		return nil
	}

	source := make([][]interface{}, len(parlays))
	for i, p := range parlays {
		source[i] = []interface{}{
			p.ID, p.RunID, p.ConfigFingerprint, p.ParlayType, p.LegCount,
			p.CombinedProb, p.AdjustedProb, p.ParlayEdge, p.QualityScore,
			p.ConfidenceTier, p.DisplayOdds, p.Legs, p.GeneratedAt,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"generated_parlays"}, parlayColumns, pgx.CopyFromRows(source))
	if err != nil {
		return fmt.Errorf("failed to batch insert parlays: %w", err)
	}
	if count != int64(len(parlays)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(parlays))
	}

	metrics.ParlaysPersistedTotal.Add(float64(count))
	return nil
}

// GetByRunID retrieves all parlays generated by a single run, best first
func (r *PostgresParlayRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.Parlay, error) {
	query := `
		SELECT id, run_id, config_fingerprint, parlay_type, leg_count,
		       combined_prob, adjusted_prob, parlay_edge, quality_score,
		       confidence_tier, display_odds, legs, generated_at
		FROM generated_parlays
		WHERE run_id = $1
		ORDER BY quality_score DESC, parlay_edge DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query parlays by run: %w", err)
	}
	defer rows.Close()

	return scanParlays(rows)
}

// GetLatest retrieves the most recently generated parlays, best first
func (r *PostgresParlayRepository) GetLatest(ctx context.Context, limit int) ([]*models.Parlay, error) {
	query := `
		SELECT id, run_id, config_fingerprint, parlay_type, leg_count,
		       combined_prob, adjusted_prob, parlay_edge, quality_score,
		       confidence_tier, display_odds, legs, generated_at
		FROM generated_parlays
		WHERE run_id = (
			SELECT run_id FROM generated_parlays ORDER BY generated_at DESC LIMIT 1
		)
		ORDER BY quality_score DESC, parlay_edge DESC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest parlays: %w", err)
	}
	defer rows.Close()

	return scanParlays(rows)
}

// DeleteOlderThan removes generated parlays past the retention window and
// returns the number of rows deleted
func (r *PostgresParlayRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	tag, err := r.db.GetPool().Exec(ctx,
		"DELETE FROM generated_parlays WHERE generated_at < NOW() - make_interval(days => $1)",
		days,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired parlays: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanParlays(rows pgx.Rows) ([]*models.Parlay, error) {
	var parlays []*models.Parlay
	for rows.Next() {
		p := &models.Parlay{}
		err := rows.Scan(
			&p.ID, &p.RunID, &p.ConfigFingerprint, &p.ParlayType, &p.LegCount,
			&p.CombinedProb, &p.AdjustedProb, &p.ParlayEdge, &p.QualityScore,
			&p.ConfidenceTier, &p.DisplayOdds, &p.Legs, &p.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parlay: %w", err)
		}
		parlays = append(parlays, p)
	}
	return parlays, rows.Err()
}
