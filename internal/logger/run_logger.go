package logger

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/parlay-engine/internal/models"
)

// RunLogger emits structured events for generation runs
type RunLogger struct {
	log *logrus.Logger
}

// NewRunLogger creates a run logger on top of a configured logrus instance
func NewRunLogger(log *logrus.Logger) *RunLogger {
	return &RunLogger{log: log}
}

// LogRunStarted records the start of a generation run
func (r *RunLogger) LogRunStarted(runID string, parlayType string, maxLegCount int) {
	r.log.WithFields(logrus.Fields{
		"component":     "generator",
		"run_id":        runID,
		"parlay_type":   parlayType,
		"max_leg_count": maxLegCount,
	}).Info("Generation run started")
}

// LogRunCompleted records a finished generation run
func (r *RunLogger) LogRunCompleted(runID string, poolSize, generated int, elapsed time.Duration) {
	r.log.WithFields(logrus.Fields{
		"component":  "generator",
		"run_id":     runID,
		"pool_size":  poolSize,
		"generated":  generated,
		"elapsed_ms": elapsed.Milliseconds(),
	}).Info("Generation run completed")
}

// LogRunFailed records a hard run failure, which only repository access
// errors can cause
func (r *RunLogger) LogRunFailed(runID string, err error) {
	r.log.WithFields(logrus.Fields{
		"component": "generator",
		"run_id":    runID,
	}).WithError(err).Error("Generation run failed")
}

// LogTopParlay records the best-ranked combination of a run
func (r *RunLogger) LogTopParlay(runID string, c *models.Combination) {
	if c == nil {
		return
	}
	r.log.WithFields(logrus.Fields{
		"component":       "generator",
		"run_id":          runID,
		"parlay_type":     c.ParlayType,
		"leg_count":       c.LegCount,
		"quality_score":   c.QualityScore,
		"parlay_edge":     c.ParlayEdge,
		"adjusted_prob":   c.AdjustedProb,
		"confidence_tier": c.ConfidenceTier,
	}).Debug("Top ranked parlay")
}
