// Package service orchestrates generation runs: cache lookup, pipeline
// execution, persistence and metrics.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/logger"
	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/parlay"
	"github.com/yourusername/parlay-engine/internal/repository"
)

// GenerationService runs the parlay generator, persists accepted parlays and
// memoizes recent results so read-side callers do not trigger redundant runs.
type GenerationService struct {
	generator *parlay.Generator
	parlays   repository.ParlayRepository
	results   *cache.Cache
	log       *logrus.Logger
	runLog    *logger.RunLogger
}

// NewGenerationService creates the service. The parlay repository may be nil
// for dry runs; generated combinations are then returned but not persisted.
func NewGenerationService(
	legs parlay.LegSource,
	parlays repository.ParlayRepository,
	cacheCfg config.CacheConfig,
	log *logrus.Logger,
) *GenerationService {
	ttl := time.Duration(cacheCfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &GenerationService{
		generator: parlay.NewGenerator(legs, log),
		parlays:   parlays,
		results:   cache.New(ttl, 2*ttl),
		log:       log,
		runLog:    logger.NewRunLogger(log),
	}
}

// Generate returns the ranked parlays for the configuration, serving a
// recent identical run from cache when one exists
func (s *GenerationService) Generate(ctx context.Context, cfg parlay.GenerationConfig) ([]*models.Combination, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cached, found := s.results.Get(cfg.Fingerprint()); found {
		metrics.ResultCacheHitsTotal.Inc()
		if combos, ok := cached.([]*models.Combination); ok {
			return combos, nil
		}
	}

	return s.GenerateFresh(ctx, cfg)
}

// GenerateFresh executes a full generation run, bypassing the result cache
func (s *GenerationService) GenerateFresh(ctx context.Context, cfg parlay.GenerationConfig) ([]*models.Combination, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.New()
	start := time.Now()
	metrics.GenerationRunsTotal.Inc()
	s.runLog.LogRunStarted(runID.String(), cfg.ParlayType, cfg.MaxLegCount)

	combos, err := s.generator.Generate(ctx, cfg)
	if err != nil {
		metrics.GenerationFailuresTotal.Inc()
		s.runLog.LogRunFailed(runID.String(), err)
		return nil, err
	}

	if err := s.persist(ctx, runID, cfg, combos); err != nil {
		return nil, err
	}

	s.results.SetDefault(cfg.Fingerprint(), combos)
	metrics.LastRunParlays.Set(float64(len(combos)))

	s.runLog.LogRunCompleted(runID.String(), poolLegCount(combos), len(combos), time.Since(start))
	if len(combos) > 0 {
		s.runLog.LogTopParlay(runID.String(), combos[0])
	}

	return combos, nil
}

// persist writes accepted combinations as parlay records tagged with the run
func (s *GenerationService) persist(ctx context.Context, runID uuid.UUID, cfg parlay.GenerationConfig, combos []*models.Combination) error {
	if s.parlays == nil || len(combos) == 0 {
		return nil
	}

	records := make([]*models.Parlay, 0, len(combos))
	fingerprint := cfg.Fingerprint()
	for _, c := range combos {
		record, err := models.NewParlayRecord(runID, fingerprint, c)
		if err != nil {
			return fmt.Errorf("failed to build parlay record: %w", err)
		}
		records = append(records, record)
	}

	if err := s.parlays.InsertBatch(ctx, records); err != nil {
		return fmt.Errorf("failed to persist generated parlays: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"run_id":  runID,
		"parlays": len(records),
	}).Info("Generated parlays persisted")

	return nil
}

// PruneExpired deletes persisted parlays older than the retention window.
// It is a no-op for dry-run services and non-positive windows.
func (s *GenerationService) PruneExpired(ctx context.Context, days int) (int64, error) {
	if s.parlays == nil || days <= 0 {
		return 0, nil
	}

	deleted, err := s.parlays.DeleteOlderThan(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("failed to prune expired parlays: %w", err)
	}

	if deleted > 0 {
		s.log.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": days,
		}).Info("Expired parlays pruned")
	}
	return deleted, nil
}

// poolLegCount counts the distinct legs referenced by the result set, used
// for run summary logging only
func poolLegCount(combos []*models.Combination) int {
	seen := make(map[string]struct{})
	for _, c := range combos {
		for _, leg := range c.Legs {
			seen[leg.ID] = struct{}{}
		}
	}
	return len(seen)
}
