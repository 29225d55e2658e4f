package oddsfeed

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/parlay"
)

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// EnrichingSource decorates a leg source, filling each leg's market-derived
// DecimalOdds and ImpliedProb from the odds feed. Enrichment failures are
// logged and swallowed: the pool is returned with consensus data only.
type EnrichingSource struct {
	source parlay.LegSource
	client *Client
	logger *logrus.Logger
}

// NewEnrichingSource wraps a leg source with market-odds enrichment
func NewEnrichingSource(source parlay.LegSource, client *Client, logger *logrus.Logger) *EnrichingSource {
	return &EnrichingSource{source: source, client: client, logger: logger}
}

// GetCandidates fetches the candidate pool and enriches it in place
func (s *EnrichingSource) GetCandidates(ctx context.Context, filter models.LegFilter) ([]*models.Leg, error) {
	pool, err := s.source.GetCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return pool, nil
	}

	ids := make([]string, len(pool))
	for i, leg := range pool {
		ids[i] = leg.ID
	}

	quotes, err := s.client.GetMarketQuotes(ctx, ids)
	if err != nil {
		metrics.OddsEnrichmentFailuresTotal.Inc()
		if s.logger != nil {
			s.logger.WithError(err).Warn("Market odds enrichment failed, continuing with consensus data")
		}
		return pool, nil
	}

	enriched := 0
	for _, leg := range pool {
		quote, ok := quotes[leg.ID]
		if !ok {
			continue
		}
		odds, _ := quote.DecimalOdds.Float64()
		prob, _ := quote.ImpliedProb.Float64()
		leg.DecimalOdds = &odds
		if prob > 0 {
			leg.ImpliedProb = &prob
		}
		enriched++
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"pool_size": len(pool),
			"enriched":  enriched,
		}).Debug("Market odds enrichment complete")
	}

	return pool, nil
}
