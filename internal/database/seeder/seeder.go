package seeder

import (
	"context"

	"skillswap/internal/database"
)

// Seeder inserts reference data. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults is the set cmd/migrate applies after migrating.
func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{},
	}
}
