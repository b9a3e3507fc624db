package seeder

// Defaults returns the seeders in dependency order. The admin seeder is skipped when
// no credentials are configured.
func Defaults(admin AdminSeeder) []Seeder {
	out := []Seeder{
		MasterDataSeeder{},
		RubricSeeder{},
	}
	if admin.Email != "" && admin.PasswordHash != "" {
		out = append(out, admin)
	}
	return out
}
