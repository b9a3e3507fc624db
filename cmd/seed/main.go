package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"levelminds/internal/config"
	"levelminds/internal/database/migration"
	dbpostgres "levelminds/internal/database/postgres"
	"levelminds/internal/database/seeder"
	"levelminds/internal/logging"
	ucauth "levelminds/internal/usecase/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logging.Init(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Closer()
	logger := lg.Base

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := (migration.Runner{Logger: logger.Named("migrate")}).Run(ctx, db.SQLDB()); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	admin := seeder.AdminSeeder{Email: cfg.Seed.AdminEmail}
	if cfg.Seed.AdminPassword != "" {
		hash, err := ucauth.NewService(nil).HashPassword(cfg.Seed.AdminPassword)
		if err != nil {
			logger.Fatal("invalid SEED_ADMIN_PASSWORD", zap.Error(err))
		}
		admin.PasswordHash = hash
	} else {
		logger.Info("SEED_ADMIN_PASSWORD not set, skipping admin account")
	}

	r := seeder.Runner{Seeders: seeder.Defaults(admin), Logger: logger.Named("seed")}
	if err := r.Run(ctx, db); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed completed")
}
