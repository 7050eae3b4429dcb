package main

import (
	"context"
	"errors"
	"os"
	"time"

	"finmo/internal/amqp"
	"finmo/internal/cli"
	"finmo/internal/config"
	"finmo/internal/log"
	gsheet "finmo/internal/sheets/google"
	"finmo/internal/storage"
	"finmo/internal/store"
	"finmo/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	// The worker logs to stdout.
	logger, _, err := cli.SetupLogger(config.Load().LogLevel, "", log.ComponentWorker)
	if err != nil {
		panic(err)
	}

	if err := run(logger); err != nil {
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	logger.Info("Starting finmo-sync")

	cfg := cli.LoadAndValidateConfig(logger, (*config.Config).ValidateMirror)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	sheetsClient, err := gsheet.NewClient(ctx, gsheet.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		return err
	}
	if err := sheetsClient.EnsureHeader(ctx); err != nil {
		logger.Error("Failed to prepare sheet header", log.FieldError, err)
		return err
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	// The local store is only read, to reconcile rows missed while the
	// worker was down.
	var local store.Reader
	if cfg.Store == "sqlite" {
		repo, err := storage.NewSQLiteRepository(cfg.DBPath, logger)
		if err != nil {
			logger.Warn("Local store unavailable, skipping reconciliation", log.FieldError, err)
		} else {
			defer repo.Close()
			local = repo
		}
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		return err
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(local, sheetsClient, logger)

	if local != nil {
		logger.Info("Performing startup sync check...")
		res, err := syncWorker.StartupSyncCheck(ctx)
		if err != nil {
			// Not fatal: the feed keeps the mirror current from here on.
			logger.Error("Failed startup sync check", log.FieldError, err)
		} else {
			logger.Info("Startup sync check done", "appended", res.Appended, "removed", res.Removed, "errors", res.Errors)
		}
	}

	if err := amqpClient.ConsumeTransactionEvents(ctx, syncWorker.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		return err
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
	return nil
}
