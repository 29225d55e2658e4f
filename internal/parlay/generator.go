package parlay

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/models"
)

// Generator runs the full pipeline: pool build, correlation filter, bounded
// enumeration, probability/edge calculation, quality scoring and ranking.
// It holds no state between runs; every run is a pure function of the
// freshly fetched leg pool and the configuration.
type Generator struct {
	pool   *PoolBuilder
	logger *logrus.Logger
}

// NewGenerator creates a generator over the given leg source
func NewGenerator(legs LegSource, logger *logrus.Logger) *Generator {
	return &Generator{
		pool:   NewPoolBuilder(legs, logger),
		logger: logger,
	}
}

// Generate produces the ranked combination list for one run. An empty result
// is a normal terminal state; the only hard failure is a leg repository
// error, which is propagated unwrapped in meaning to the caller.
func (g *Generator) Generate(ctx context.Context, cfg GenerationConfig) ([]*models.Combination, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	pool, err := g.pool.Build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	metrics.PoolSize.Set(float64(len(pool)))
	if len(pool) == 0 {
		g.log(cfg, nil, 0, time.Since(start))
		return nil, nil
	}

	// Each parlay type searches under its own budget: the multi-game walk
	// saturating its caps must not leave single-game with nothing to spend.
	var accepted []*models.Combination
	var examined int

	for _, parlayType := range cfg.Types() {
		budget := newSearchBudget()
		candidates := FilterForType(pool, parlayType)
		accepted = append(accepted, g.generateType(candidates, parlayType, cfg, budget)...)
		examined += budget.totalUsed
	}

	ranked := rank(accepted, cfg)
	g.log(cfg, ranked, examined, time.Since(start))
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	metrics.ParlaysGeneratedTotal.Add(float64(len(ranked)))

	return ranked, nil
}

// generateType enumerates and evaluates combinations of one parlay type for
// every leg count in range. Each enumeration path appends to its own local
// sequence; results are merged here rather than grown through shared state.
func (g *Generator) generateType(candidates []*models.Leg, parlayType models.ParlayType, cfg GenerationConfig, budget *searchBudget) []*models.Combination {
	var accepted []*models.Combination

	visit := func(legs []*models.Leg) bool {
		metrics.CombinationsExaminedTotal.Inc()
		if c := evaluate(legs, parlayType, cfg); c != nil {
			c.QualityScore = score(c)
			accepted = append(accepted, c)
			metrics.CombinationsAcceptedTotal.Inc()
		} else {
			metrics.CombinationsRejectedTotal.Inc()
		}
		return true
	}

	for legCount := 2; legCount <= cfg.MaxLegCount; legCount++ {
		if budget.exhausted() {
			break
		}
		budget.nextLegCount()
		if parlayType == models.ParlayMultiGame {
			enumerateMultiGame(candidates, legCount, budget, visit)
		} else {
			enumerateSingleGame(candidates, legCount, budget, visit)
		}
	}

	return accepted
}

func (g *Generator) log(cfg GenerationConfig, ranked []*models.Combination, examined int, elapsed time.Duration) {
	if g.logger == nil {
		return
	}
	g.logger.WithFields(logrus.Fields{
		"parlay_type": cfg.ParlayType,
		"generated":   len(ranked),
		"examined":    examined,
		"elapsed_ms":  elapsed.Milliseconds(),
	}).Info("Generation run complete")
}
