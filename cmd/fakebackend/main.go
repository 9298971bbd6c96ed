// fakebackend serves the booking API in memory for local runs of the
// client. State is lost on restart.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vendepass-client/internal/adapters/catalog"
	"vendepass-client/internal/config"
	"vendepass-client/internal/fakebackend"

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

	addr := config.Get("FAKE_BACKEND_ADDR", ":8081")
	seats := 5

	flagSet := pflag.NewFlagSet("fakebackend", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", addr, "listen address")
	flagSet.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "city catalog JSON file")
	flagSet.IntVar(&seats, "seats", seats, "seats per seeded flight")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cities, err := catalog.NewJSONSource(cfg.CatalogPath).LoadCities(ctx)
	if err != nil {
		return err
	}
	store := fakebackend.NewStore(cities, fakebackend.DefaultSeed(cities, seats))

	srv := &http.Server{
		Addr:              addr,
		Handler:           fakebackend.NewRouter(store, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fake backend listening", "addr", addr, "cities", len(cities))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
