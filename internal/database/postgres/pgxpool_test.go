package postgres

import (
	"strings"
	"testing"

	"levelminds/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "levelminds",
		DBUser:     "app",
		DBPassword: "p@ss word",
	})

	if !strings.HasPrefix(dsn, "postgres://app:") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	if !strings.Contains(dsn, "@db:5432/levelminds") {
		t.Fatalf("expected host and db in dsn, got %s", dsn)
	}
	if !strings.HasSuffix(dsn, "sslmode=disable") {
		t.Fatalf("expected default sslmode, got %s", dsn)
	}
	if strings.Contains(dsn, "p@ss word") {
		t.Fatalf("expected escaped password, got %s", dsn)
	}
}

func TestNilPool(t *testing.T) {
	var p *Pool
	if err := p.Close(); err != nil {
		t.Fatalf("expected nil close err, got %v", err)
	}
	var id int
	if err := p.QueryRow(t.Context(), "SELECT 1").Scan(&id); err == nil {
		t.Fatalf("expected error from nil pool row")
	}
}
