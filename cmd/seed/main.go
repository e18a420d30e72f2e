package main

import (
	"context"
	"os"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/seed"
	"storefront/pkg/database"
	"storefront/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	cfg, err := config.LoadDatabase()
	if err != nil {
		logg.Error(ctx, "load config", err)
		os.Exit(1)
	}

	client, err := database.Open(ctx, database.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN}, logg)
	if err != nil {
		logg.Error(ctx, "open database", err)
		os.Exit(1)
	}
	defer client.Close()

	// sqlite has no migration files; postgres is expected to be migrated.
	if cfg.DB.Driver == "sqlite" {
		if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			logg.Error(ctx, "auto migrate", err)
			os.Exit(1)
		}
	}

	if _, err := seed.Run(ctx, client.DB(), logg); err != nil {
		logg.Error(ctx, "seed failed", err)
		client.Close()
		os.Exit(1)
	}
}
