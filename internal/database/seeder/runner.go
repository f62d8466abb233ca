package seeder

import (
	"context"
	"fmt"
	"log"

	"skill-matrix/internal/database"
)

// Runner executes the catalog seeders in order at startup, after migrations.
type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed catalog %s: %w", s.Name(), err)
		}
		log.Printf("catalog %s seeded", s.Name())
	}
	return nil
}
