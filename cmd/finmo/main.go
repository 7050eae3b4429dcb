package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"finmo/internal/advisor"
	"finmo/internal/backend"
	"finmo/internal/cache"
	"finmo/internal/cli"
	"finmo/internal/config"
	"finmo/internal/ledger"
	"finmo/internal/log"
	"finmo/internal/session"
	"finmo/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "finmo:", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file for local development
	cli.LoadEnvFile()

	cfg := config.Load()

	// The terminal owns stdout, so logs always go to a file.
	logger, closer, err := cli.SetupLogger(cfg.LogLevel, cfg.LogFile, log.ComponentApp)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		return err
	}

	logger.Info("Starting finmo", "store", cfg.Store, "advice_enabled", cfg.AdviceEnabled(), "feed_enabled", cfg.FeedEnabled())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to open store", log.FieldError, err)
		return err
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Warn("Cleanup failed", log.FieldError, err)
			}
		}()
	}

	l := ledger.Load(ctx, res.Store, ledger.Options{
		Logger:       logger,
		Publisher:    res.Publisher,
		ForecastDays: cfg.ForecastDays,
	})
	defer l.Close()

	if cfg.GoogleIDToken != "" && l.User().IsZero() {
		if user, err := session.Decode(cfg.GoogleIDToken); err != nil {
			logger.Warn("Ignoring GOOGLE_ID_TOKEN", log.FieldError, err)
		} else {
			l.SignIn(ctx, user)
		}
	}

	var client advisor.Client
	if cfg.AdviceEnabled() {
		gc, err := advisor.NewGeminiClient(ctx, advisor.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.AdviceTimeout,
		}, logger)
		if err != nil {
			logger.Warn("Advisory client unavailable, using fallback advice", log.FieldError, err)
		} else {
			client = gc
		}
	}
	svc := advisor.NewService(client, cfg.AdviceCacheTTL, logger)

	caches := cache.NewManager(logger)
	caches.Register(svc.Cache())
	caches.StartCleanup(time.Minute)
	defer caches.Stop()

	app := tui.New(l, svc, tui.Options{
		Currency:           cfg.Currency,
		RecentTransactions: cfg.AdviceRecentTransactions,
		Logger:             logger,
	})

	// SIGINT/SIGTERM stop the terminal the same way as quitting from it.
	runCtx, _ := cli.GracefulShutdown(logger, 5*time.Second, cancel)
	if err := app.Run(runCtx); err != nil {
		logger.Error("Terminal UI failed", log.FieldError, err)
		return err
	}

	logger.Info("finmo stopped")
	return nil
}
