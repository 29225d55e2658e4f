package repository

import (
	"fmt"

	"github.com/yourusername/parlay-engine/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Leg    LegRepository
	Parlay ParlayRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Leg:    NewPostgresLegRepository(db),
		Parlay: NewPostgresParlayRepository(db),
	}, nil
}
