package database

import (
	"context"
	"fmt"

	"github.com/yourusername/parlay-engine/internal/config"
)

// requiredTables are the tables the engine reads from and writes to. They
// are created by the deployment's migration step, not by the engine itself.
var requiredTables = []string{"matches", "prediction_legs", "generated_parlays"}

// Initialize creates a database connection pool and verifies the expected
// schema is present, returning a descriptive error when a migration has not
// been applied.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, table := range requiredTables {
		var exists bool
		err := db.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)",
			table,
		).Scan(&exists)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to verify schema: %w", err)
		}
		if !exists {
			db.Close()
			return nil, fmt.Errorf("required table %q not found; run database migrations first", table)
		}
	}

	return db, nil
}
