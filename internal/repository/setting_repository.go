package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"levelminds/internal/database"
)

// Known setting keys.
const SettingJobMatchingEnabled = "job_matching_enabled"

type SettingRepository interface {
	// GetBool reports the stored value and whether the key exists.
	GetBool(ctx context.Context, key string) (bool, bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}

type PostgresSettingRepository struct {
	db database.DB
}

func NewPostgresSettingRepository(db database.DB) *PostgresSettingRepository {
	return &PostgresSettingRepository{db: db}
}

func (r *PostgresSettingRepository) GetBool(ctx context.Context, key string) (bool, bool, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return false, false, nil
		}
		return false, false, err
	}

	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false, fmt.Errorf("setting %s: %w", key, err)
	}
	return v, true, nil
}

func (r *PostgresSettingRepository) SetBool(ctx context.Context, key string, value bool) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, string(raw),
	)
	return err
}
