// vendepass is the terminal client of the flight booking service. It signs
// in, picks a route on the map of Brazilian capitals, reserves the route's
// flights and manages the resulting cart and tickets.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	"vendepass-client/internal/adapters/backend"
	"vendepass-client/internal/adapters/cache"
	"vendepass-client/internal/adapters/catalog"
	"vendepass-client/internal/config"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/platform/db"
	"vendepass-client/internal/ports"
	"vendepass-client/internal/services"
	"vendepass-client/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

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

	var logOutput, logLevel string
	flagSet := pflag.NewFlagSet("vendepass", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "backend base URL")
	flagSet.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	flagSet.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "city catalog JSON file")
	flagSet.StringVar(&cfg.CatalogDSN, "catalog-dsn", cfg.CatalogDSN, "read the catalog from SQL instead (sqlite:… or postgres://…)")
	flagSet.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "cache cart and tickets in Redis")
	flagSet.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "cart and ticket cache TTL")
	flagSet.StringVar(&logOutput, "log-output", "", "write log records to this file")
	flagSet.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("parse --log-level: %w", err)
		}
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	// Nothing may write to the terminal once the alt screen is up.
	tuiHandler := tui.NewTUILogHandler(slog.LevelWarn)
	fileHandler, closeLog, err := openLogHandler(logOutput, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := slog.New(tui.FanoutHandler{tuiHandler, fileHandler})
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cities, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	cartCache, ticketCache, closeCache, err := openListCaches(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	client, err := backend.NewClient(cfg.APIURL,
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	notifier := tui.NewProgramNotifier()
	workflow := services.NewWorkflow(services.WorkflowDeps{
		Backend:        client,
		Catalog:        cities,
		CartCache:      cartCache,
		TicketCache:    ticketCache,
		Notifier:       notifier,
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	})
	client.SetAuthFailureHandler(workflow.HandleAuthFailure)

	logger.Info("starting", "api_url", cfg.APIURL, "cities", cities.Len())

	program := tea.NewProgram(tui.NewModel(workflow, tui.WithContext(ctx)), tea.WithAltScreen())
	notifier.SetProgram(program)
	tuiHandler.SetProgram(program)

	_, err = program.Run()

	// Best effort; the server expires the session anyway.
	if workflow.Sessions.Authenticated() {
		logoutCtx, logoutCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer logoutCancel()
		if logoutErr := workflow.SignOut(logoutCtx); logoutErr != nil {
			logger.Info("logout on exit failed", "err", logoutErr)
		}
	}

	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `vendepass: book flights between Brazilian capitals.

Settings are read from .env and the environment (API_URL, REQUEST_TIMEOUT,
CATALOG_PATH, CATALOG_DSN, REDIS_URL, CACHE_TTL, LOG_LEVEL); flags override them.

Usage:
  vendepass [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

func openLogHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	if path == "" {
		return slog.NewTextHandler(io.Discard, nil), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}), func() { file.Close() }, nil
}

func loadCatalog(ctx context.Context, cfg config.Config) (*services.Catalog, error) {
	var source ports.CatalogSource = catalog.NewJSONSource(cfg.CatalogPath)

	if cfg.CatalogDSN != "" {
		conn, err := db.Open(cfg.CatalogDSN)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		source = catalog.NewSQLSource(conn)
	}

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return services.LoadCatalog(loadCtx, source)
}

func openListCaches(ctx context.Context, cfg config.Config, logger *slog.Logger) (
	ports.ListCache[domain.Reservation], ports.ListCache[domain.Ticket], func(), error,
) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryListCache[domain.Reservation](cfg.CacheTTL),
			cache.NewMemoryListCache[domain.Ticket](cfg.CacheTTL),
			func() {}, nil
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return cache.NewRedisListCache[domain.Reservation](rdb, "vendepass:cart:", cfg.CacheTTL, logger),
		cache.NewRedisListCache[domain.Ticket](rdb, "vendepass:tickets:", cfg.CacheTTL, logger),
		func() { rdb.Close() }, nil
}
