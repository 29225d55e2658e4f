package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/models"
)

// PostgresLegRepository implements LegRepository for PostgreSQL
type PostgresLegRepository struct {
	db *database.DB
}

// NewPostgresLegRepository creates a new leg repository
func NewPostgresLegRepository(db *database.DB) LegRepository {
	return &PostgresLegRepository{db: db}
}

const legColumns = `
	l.id, l.match_id, m.starts_at, l.market_type, l.market_subtype, l.line,
	l.consensus_prob, l.consensus_confidence, l.model_agreement, l.edge_consensus,
	l.risk_level, l.correlation_tags, l.decimal_odds, l.implied_prob`

// GetCandidates retrieves legs for future, active matches ordered by
// probability, agreement and edge descending. The edge filter is skipped
// when MinEdge is zero so an unknown edge never disqualifies a leg.
func (r *PostgresLegRepository) GetCandidates(ctx context.Context, filter models.LegFilter) ([]*models.Leg, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM prediction_legs l
		JOIN matches m ON m.id = l.match_id
		WHERE m.starts_at > NOW()
		  AND m.status = 'active'
		  AND l.consensus_prob >= $1
		  AND l.model_agreement >= $2
		  AND ($3::float8 <= 0 OR l.edge_consensus >= $3)
		ORDER BY l.consensus_prob DESC, l.model_agreement DESC, l.edge_consensus DESC
		LIMIT $4
	`, legColumns)

	start := time.Now()
	rows, err := r.db.GetPool().Query(ctx, query,
		filter.MinProbability, filter.MinAgreement, filter.MinEdge, filter.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate legs: %w", err)
	}
	defer rows.Close()
	metrics.LegFetchDuration.Observe(time.Since(start).Seconds())

	return scanLegs(rows)
}

// GetByMatchID retrieves all legs for a single match
func (r *PostgresLegRepository) GetByMatchID(ctx context.Context, matchID string) ([]*models.Leg, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM prediction_legs l
		JOIN matches m ON m.id = l.match_id
		WHERE l.match_id = $1
		ORDER BY l.edge_consensus DESC, l.id ASC
	`, legColumns)

	rows, err := r.db.GetPool().Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query legs for match: %w", err)
	}
	defer rows.Close()

	return scanLegs(rows)
}

type legRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanLegs(rows legRows) ([]*models.Leg, error) {
	var legs []*models.Leg
	for rows.Next() {
		leg := &models.Leg{}
		err := rows.Scan(
			&leg.ID, &leg.MatchID, &leg.MatchStartsAt, &leg.MarketType, &leg.MarketSubtype,
			&leg.Line, &leg.ConsensusProb, &leg.ConsensusConfidence, &leg.ModelAgreement,
			&leg.EdgeConsensus, &leg.RiskLevel, &leg.CorrelationTags, &leg.DecimalOdds,
			&leg.ImpliedProb,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leg: %w", err)
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}
