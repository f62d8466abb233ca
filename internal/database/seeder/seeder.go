package seeder

import (
	"context"

	"skill-matrix/internal/database"
)

// Seeder populates one of the assignable catalogs (skills, certifications)
// with its default rows. Implementations must be idempotent: a rerun against
// an already-seeded database changes nothing.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
