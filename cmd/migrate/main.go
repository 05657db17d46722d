package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	_ = telemetry.Init(cfg.LogJSON, cfg.LogDebug)
	defer telemetry.Sync()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"err": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}
