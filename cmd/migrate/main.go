package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"storefront/internal/config"
	"storefront/pkg/database"
	"storefront/pkg/logger"
	"storefront/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset|files")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	ctx := logg.WithField(context.Background(), "cmd", *cmd)

	if *cmd == "files" {
		names, err := migrate.Files()
		exitOnError(ctx, logg, "list migrations", err)
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.LoadDatabase()
	exitOnError(ctx, logg, "config", err)
	if cfg.DB.Driver != "postgres" {
		fmt.Fprintf(os.Stderr, "migrations target postgres, DB_DRIVER is %q\n", cfg.DB.Driver)
		os.Exit(1)
	}

	client, err := database.Open(ctx, database.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN}, logg)
	exitOnError(ctx, logg, "database", err)
	defer client.Close()

	sqlDB, err := client.DB().DB()
	exitOnError(ctx, logg, "sql database", err)

	if err := migrate.Run(ctx, sqlDB, *cmd, flag.Args()...); err != nil {
		logg.Error(ctx, "migration failed", err)
		client.Close()
		os.Exit(1)
	}
	logg.Info(ctx, "migration finished")
}

func exitOnError(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "resource", resource), "migrate startup failed", err)
	os.Exit(1)
}
