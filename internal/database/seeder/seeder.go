package seeder

import (
	"context"

	"levelminds/internal/database"
)

// Seeder writes one idempotent batch of reference data. Requires names every table and
// column Run touches; the runner verifies them before any seeder writes.
type Seeder interface {
	Name() string
	Requires() []TableSpec
	Run(ctx context.Context, db database.DB) error
}
