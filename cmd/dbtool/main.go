package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"vendepass-client/internal/adapters/catalog"
	"vendepass-client/internal/config"
	"vendepass-client/internal/platform/db"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/pflag"
)

// dbtool creates the cities table and loads the JSON catalog into it so the
// client can be pointed at CATALOG_DSN instead of the JSON file.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flagSet := pflag.NewFlagSet("dbtool", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.CatalogDSN, "dsn", cfg.CatalogDSN, "catalog database (sqlite:… or postgres://…)")
	flagSet.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "city catalog JSON file to seed from")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.CatalogDSN) == "" {
		return errors.New("CATALOG_DSN or --dsn is required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	ctx := context.Background()

	conn, err := db.Open(cfg.CatalogDSN)
	if err != nil {
		return err
	}
	defer conn.Close()

	return initAndSeed(ctx, logger, conn, cfg.CatalogPath)
}

func initAndSeed(ctx context.Context, logger *slog.Logger, conn *sqlx.DB, seedPath string) error {
	logger.Info("initializing database schema")
	if err := catalog.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	cities, err := catalog.NewJSONSource(seedPath).LoadCities(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	logger.Info("seeding cities", "path", seedPath, "count", len(cities))
	if err := catalog.SeedCities(ctx, conn, cities); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	logger.Info("seeding complete")

	return nil
}
