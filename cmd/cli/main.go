package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/assettrack/internal/buildinfo"
	"github.com/dmitrijs2005/assettrack/internal/client/cli"
	"github.com/dmitrijs2005/assettrack/internal/client/config"
	"github.com/dmitrijs2005/assettrack/internal/client/credentials"
	"github.com/dmitrijs2005/assettrack/internal/client/metrics"
	"github.com/dmitrijs2005/assettrack/internal/client/repositories/suggestions"
	"github.com/dmitrijs2005/assettrack/internal/client/storage"
	"github.com/dmitrijs2005/assettrack/internal/client/store"
	"github.com/dmitrijs2005/assettrack/internal/client/transport"
	"github.com/dmitrijs2005/assettrack/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig(os.Args[1:])

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	if z, ok := logger.(*logging.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	tr, err := transport.New(transport.Config{URL: cfg.ServerURL, Timeout: cfg.Timeout}, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return err
	}

	st := store.New(
		store.Deps{
			Transport:   tr,
			Credentials: credentials.NewSQLiteStore(db, cfg.CredentialSecret, logger),
			Logger:      logger,
		},
		store.WithSuggestionRepository(suggestions.NewSQLiteRepository(db)),
		store.WithMetrics(rec),
	)

	if err := st.Hydrate(ctx); err != nil {
		logger.Warn(ctx, "suggestions unavailable", "error", err)
	}
	if st.RestoreSession(ctx) {
		logger.Info(ctx, "session restored from remembered credentials")
	}

	cli.NewApp(st, os.Stdin, os.Stdout, logger, cli.WithMetrics(reg)).Run(ctx)
	return nil
}
