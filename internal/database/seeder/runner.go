package seeder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"levelminds/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run checks the combined schema requirements, then runs each seeder in order. The
// first failure stops the run; earlier seeders have already committed.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	seeders := make([]Seeder, 0, len(r.Seeders))
	var specs []TableSpec
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		seeders = append(seeders, s)
		specs = append(specs, s.Requires()...)
	}
	if err := EnsureSchema(ctx, db, specs...); err != nil {
		return fmt.Errorf("seed schema check: %w", err)
	}

	for _, s := range seeders {
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeded", zap.String("seeder", s.Name()), zap.Duration("took", time.Since(start)))
	}
	return nil
}
