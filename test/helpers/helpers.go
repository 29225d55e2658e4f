// Package helpers provides shared setup for integration tests.
package helpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/models"
)

// SetupTestDB connects to the test database. Connection parameters come from
// TEST_DATABASE_* environment variables with local defaults.
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Host:               GetEnvOrDefault("TEST_DATABASE_HOST", "localhost"),
		Port:               getEnvInt("TEST_DATABASE_PORT", 5432),
		Name:               GetEnvOrDefault("TEST_DATABASE_NAME", "parlay_engine_test"),
		User:               GetEnvOrDefault("TEST_DATABASE_USER", "test"),
		Password:           GetEnvOrDefault("TEST_DATABASE_PASSWORD", "test"),
		SSLMode:            "disable",
		MaxConnections:     10,
		MaxIdleConnections: 2,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.NewDB(ctx, cfg)
	require.NoError(t, err, "failed to connect to test database")

	err = db.Ping(ctx)
	require.NoError(t, err, "failed to ping test database")

	return db
}

// TeardownTestDB truncates test tables and closes the connection pool.
func TeardownTestDB(t *testing.T, db *database.DB) {
	t.Helper()

	CleanupDatabase(t, db)
	db.Close()
}

// CleanupDatabase truncates all test tables.
func CleanupDatabase(t *testing.T, db *database.DB) {
	t.Helper()

	tables := []string{
		"generated_parlays",
		"prediction_legs",
		"matches",
	}

	ctx := context.Background()
	for _, table := range tables {
		_, err := db.GetPool().Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Logf("Warning: failed to truncate table %s: %v", table, err)
		}
	}
}

// InsertTestMatch inserts a future, active match and returns its ID.
func InsertTestMatch(t *testing.T, db *database.DB, id string, startsAt time.Time, status string) string {
	t.Helper()

	_, err := db.GetPool().Exec(context.Background(),
		`INSERT INTO matches (id, starts_at, status) VALUES ($1, $2, $3)`,
		id, startsAt, status,
	)
	require.NoError(t, err, "failed to insert test match")
	return id
}

// InsertTestLeg inserts a prediction leg for an existing match.
func InsertTestLeg(t *testing.T, db *database.DB, leg *models.Leg) {
	t.Helper()

	_, err := db.GetPool().Exec(context.Background(),
		`INSERT INTO prediction_legs (
			id, match_id, market_type, market_subtype, line,
			consensus_prob, consensus_confidence, model_agreement, edge_consensus,
			risk_level, correlation_tags, decimal_odds, implied_prob
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		leg.ID, leg.MatchID, leg.MarketType, leg.MarketSubtype, leg.Line,
		leg.ConsensusProb, leg.ConsensusConfidence, leg.ModelAgreement, leg.EdgeConsensus,
		leg.RiskLevel, leg.CorrelationTags, leg.DecimalOdds, leg.ImpliedProb,
	)
	require.NoError(t, err, "failed to insert test leg")
}

// CreateTestContext creates a context with a timeout for testing.
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}

// GetEnvOrDefault returns environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
