package seeder

import (
	"context"

	"levelminds/internal/database"
)

type MasterDataSeeder struct{}

func (MasterDataSeeder) Name() string { return "master_data" }

var (
	seedJobTypes = []string{"Teacher", "Assistant Teacher", "Counselor", "Coordinator", "Principal"}
	seedSubjects = []string{"Mathematics", "Science", "English", "Social Studies", "Computer Science", "Physical Education"}
	seedCities   = map[string][]string{
		"Karnataka":   {"Bengaluru", "Mysuru", "Mangaluru"},
		"Maharashtra": {"Mumbai", "Pune", "Nagpur"},
		"Tamil Nadu":  {"Chennai", "Coimbatore", "Madurai"},
		"Delhi":       {"New Delhi"},
	}
)

func (MasterDataSeeder) Requires() []TableSpec {
	return []TableSpec{
		Table("job_types", "id", "name"),
		Table("subjects", "id", "name"),
		Table("states", "id", "name"),
		Table("cities", "id", "state_id", "name"),
	}
}

func (MasterDataSeeder) Run(ctx context.Context, db database.DB) error {
	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, name := range seedJobTypes {
			if _, err := tx.Exec(ctx, `INSERT INTO job_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
				return err
			}
		}
		for _, name := range seedSubjects {
			if _, err := tx.Exec(ctx, `INSERT INTO subjects (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
				return err
			}
		}
		for state, cities := range seedCities {
			var stateID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO states (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id`, state).Scan(&stateID)
			if err != nil {
				return err
			}
			for _, city := range cities {
				_, err := tx.Exec(ctx,
					`INSERT INTO cities (state_id, name) VALUES ($1, $2) ON CONFLICT (state_id, name) DO NOTHING`,
					stateID, city,
				)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}
