// cmd/retail-etl/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"retail-etl/pkg/clean"
	"retail-etl/pkg/config"
	"retail-etl/pkg/connector"
	"retail-etl/pkg/extract"
	"retail-etl/pkg/load"
	"retail-etl/pkg/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := connector.NewConnectorFactory(cfg, logger)
	source, target, err := factory.CreateAllConnectors(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer source.Close()
	defer target.Close()

	if err := target.Validate(); err != nil {
		return fmt.Errorf("target database validation failed: %w", err)
	}

	apiClient, err := extract.NewStoreAPIClient(cfg.StoreAPI, logger)
	if err != nil {
		return err
	}

	// Object storage failing to initialize only costs the lanes that
	// read from it; those degrade to empty tables.
	s3Reader, err := extract.NewS3Reader(ctx, cfg.S3, logger)
	if err != nil {
		logger.Warn("Object storage unavailable", zap.Error(err))
		s3Reader = nil
	}

	extractor, err := extract.NewExtractor(source, apiClient, s3Reader, logger)
	if err != nil {
		return err
	}

	loader, err := load.NewPostgresLoader(target, logger, cfg.LoadBatchSize)
	if err != nil {
		return err
	}

	cleaner, err := clean.NewCleaner(logger, clean.Options{
		StripStaffNumbers: cfg.StripStaffNumbers,
		SnapshotYear:      cfg.SnapshotYear,
	})
	if err != nil {
		return err
	}

	runner, err := pipeline.NewRunner(extractor, loader, logger)
	if err != nil {
		return err
	}

	lanes := pipeline.DefaultLanes(cleaner, pipeline.Overrides{
		CardPDF: os.Getenv("CARD_PDF_PATH"),
	})

	summary := runner.Run(ctx, lanes)
	if !summary.AllSucceeded() {
		return fmt.Errorf("%d of %d lanes failed", summary.FailedLanes, len(summary.Results))
	}
	return nil
}

// buildLogger assembles the zap logger from the configured level and
// format.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
