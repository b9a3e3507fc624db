package seeder

import (
	"context"
	"errors"
	"fmt"

	"levelminds/internal/database"
)

type TableSpec struct {
	Table   string
	Columns []string
}

func Table(name string, columns ...string) TableSpec {
	return TableSpec{Table: name, Columns: columns}
}

// EnsureSchema checks all specs with one information_schema query and reports every
// missing table or column at once, so a stale database fails before the first insert.
func EnsureSchema(ctx context.Context, db database.DB, specs ...TableSpec) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	tables := make([]string, 0, len(specs))
	for _, s := range specs {
		if s.Table == "" {
			return fmt.Errorf("empty table")
		}
		tables = append(tables, s.Table)
	}
	if len(tables) == 0 {
		return nil
	}

	rows, err := db.Query(ctx, `
		SELECT table_name, column_name FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = ANY($1)`, tables)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]map[string]struct{}{}
	for rows.Next() {
		var table, col string
		if err := rows.Scan(&table, &col); err != nil {
			return err
		}
		if existing[table] == nil {
			existing[table] = map[string]struct{}{}
		}
		existing[table][col] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return missing(existing, specs)
}

func missing(existing map[string]map[string]struct{}, specs []TableSpec) error {
	var errs []error
	for _, s := range specs {
		cols, ok := existing[s.Table]
		if !ok {
			errs = append(errs, fmt.Errorf("schema mismatch: missing table %s", s.Table))
			continue
		}
		for _, c := range s.Columns {
			if _, ok := cols[c]; !ok {
				errs = append(errs, fmt.Errorf("schema mismatch: missing column %s.%s", s.Table, c))
			}
		}
	}
	return errors.Join(errs...)
}
