package seeder

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"levelminds/internal/database"
)

// AdminSeeder creates the bootstrap admin account. An existing account with the same
// email is left untouched.
type AdminSeeder struct {
	Email        string
	PasswordHash string
}

func (AdminSeeder) Name() string { return "admin" }

func (AdminSeeder) Requires() []TableSpec {
	return []TableSpec{Table("users", "id", "email", "password_hash", "role")}
}

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	_, err := db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO NOTHING`,
		uuid.New(), strings.ToLower(strings.TrimSpace(s.Email)), s.PasswordHash,
	)
	return err
}
